package samples

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"magcal-go/calib"
)

// Writer persists samples in the same text layout the parser reads:
// "%f ,%f ,%f" per line. It is safe for concurrent use.
type Writer struct {
	mu    sync.Mutex
	w     *bufio.Writer
	c     io.Closer
	count int
}

func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{w: bufio.NewWriter(f), c: f}, nil
}

// NewStreamWriter writes to w; Close only flushes.
func NewStreamWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (sw *Writer) Write(s calib.Sample) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.write(s)
}

func (sw *Writer) WriteAll(samples []calib.Sample) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	for _, s := range samples {
		if err := sw.write(s); err != nil {
			return err
		}
	}
	return sw.w.Flush()
}

func (sw *Writer) write(s calib.Sample) error {
	if _, err := fmt.Fprintf(sw.w, "%f ,%f ,%f\n", s.X, s.Y, s.Z); err != nil {
		return err
	}
	sw.count++
	return nil
}

// Count returns the number of samples written so far.
func (sw *Writer) Count() int {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.count
}

func (sw *Writer) Flush() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Flush()
}

func (sw *Writer) Close() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if err := sw.w.Flush(); err != nil {
		if sw.c != nil {
			sw.c.Close()
		}
		return err
	}
	if sw.c != nil {
		return sw.c.Close()
	}
	return nil
}
