package samples

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"magcal-go/calib"
)

func TestRead(t *testing.T) {
	in := "# raw dump\n1,2,3\n\n -4.5 , 0.25,1e2\n7 ,8 ,9\n"
	got, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []calib.Sample{{X: 1, Y: 2, Z: 3}, {X: -4.5, Y: 0.25, Z: 100}, {X: 7, Y: 8, Z: 9}}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line string
	}{
		{"short", "1,2,3\n1,2\n", "line 2"},
		{"nan text", "1,2,3\n4,5,6\nx,1,2\n", "line 3"},
		{"extra", "1,2,3,4\n", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("error = %v, want ErrMalformed", err)
			}
			if !strings.Contains(err.Error(), tt.line) {
				t.Errorf("error %q does not name %s", err, tt.line)
			}
		})
	}
}

func TestParseLine(t *testing.T) {
	s, err := ParseLine(" 1.5, -2 ,3\r\n")
	if err != nil || s != (calib.Sample{X: 1.5, Y: -2, Z: 3}) {
		t.Errorf("ParseLine = %+v, %v", s, err)
	}
	if _, err := ParseLine("1;2;3"); !errors.Is(err, ErrMalformed) {
		t.Errorf("ParseLine(1;2;3) error = %v", err)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	in := []calib.Sample{{X: 1, Y: 2, Z: 3}, {X: -0.5, Y: 0.125, Z: 42}}
	if err := w.WriteAll(in); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if err := w.Write(calib.Sample{X: 9, Y: 9, Z: 9}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if w.Count() != 3 {
		t.Errorf("Count = %d, want 3", w.Count())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if first := strings.SplitN(string(raw), "\n", 2)[0]; first != "1.000000 ,2.000000 ,3.000000" {
		t.Errorf("first line = %q", first)
	}

	p := NewParser(path)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := append(in, calib.Sample{X: 9, Y: 9, Z: 9})
	if len(p.Samples) != len(want) {
		t.Fatalf("parsed %d samples, want %d", len(p.Samples), len(want))
	}
	for i := range want {
		if p.Samples[i] != want[i] {
			t.Errorf("sample %d = %+v, want %+v", i, p.Samples[i], want[i])
		}
	}
}

func TestStreamWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(&buf)
	if err := w.Write(calib.Sample{X: 1, Y: 0, Z: -1}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Error("stream writer flushed before Flush")
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "1.000000 ,0.000000 ,-1.000000\n" {
		t.Errorf("output = %q", got)
	}
}

func TestParseMissingFile(t *testing.T) {
	if err := NewParser(filepath.Join(t.TempDir(), "nope.txt")).Parse(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Parse error = %v, want not-exist", err)
	}
}
