package server

import (
	"errors"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"magcal-go/calib"
	"magcal-go/samples"
)

func TestDecodeDatagram(t *testing.T) {
	data := []byte("1,2,3\n\n# comment\n4.5 ,-6 ,7\nbogus\n")
	got, errs := DecodeDatagram(data)
	want := []calib.Sample{{X: 1, Y: 2, Z: 3}, {X: 4.5, Y: -6, Z: 7}}
	if len(got) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want one", errs)
	}
	if !errors.Is(errs[0], samples.ErrMalformed) || !strings.Contains(errs[0].Error(), "record 5") {
		t.Errorf("error = %v, want a malformed record 5", errs[0])
	}
}

func TestEncodeDecode(t *testing.T) {
	in := []calib.Sample{{X: 0.25, Y: -110, Z: 3e-3}}
	out, errs := DecodeDatagram(EncodeDatagram(in))
	if len(errs) != 0 || len(out) != 1 || out[0] != in[0] {
		t.Errorf("decode(encode(%v)) = %v, %v", in, out, errs)
	}
}

func newTestCollector(t *testing.T) (*Collector, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mag_out.txt")
	w, err := samples.NewWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { w.Close() })
	c, err := NewCollector("127.0.0.1:0", w)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	return c, path
}

func waitCount(t *testing.T, c *Collector, n int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for c.Count() < n {
		if time.Now().After(deadline) {
			t.Fatalf("collector has %d samples, want %d", c.Count(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHandlePacket(t *testing.T) {
	c, path := newTestCollector(t)
	defer c.Stop()

	from := &net.UDPAddr{IP: net.IPv4(10, 0, 0, 7), Port: 5000}
	c.handlePacket([]byte("1,2,3\nx,y\n4,5,6\n"), from)
	c.handlePacket([]byte("garbage"), from)

	if c.Count() != 2 || c.Rejected() != 2 {
		t.Errorf("count/rejected = %d/%d, want 2/2", c.Count(), c.Rejected())
	}
	if got := c.Sources()[from.String()]; got != 2 {
		t.Errorf("sources[%s] = %d, want 2", from, got)
	}

	c.Stop()
	p := samples.NewParser(path)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Samples) != 2 || p.Samples[1] != (calib.Sample{X: 4, Y: 5, Z: 6}) {
		t.Errorf("recorded %v", p.Samples)
	}
}

func TestReplayIntoCollector(t *testing.T) {
	src := filepath.Join(t.TempDir(), "replay.txt")
	w, err := samples.NewWriter(src)
	if err != nil {
		t.Fatal(err)
	}
	var sent []calib.Sample
	for i := 0; i < 10; i++ {
		sent = append(sent, calib.Sample{X: float64(i), Y: float64(-i), Z: 0.5})
	}
	if err := w.WriteAll(sent); err != nil {
		t.Fatal(err)
	}
	w.Close()

	c, path := newTestCollector(t)
	go c.Start()

	n, err := Replay(src, c.LocalAddr().String(), 0, 4)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if n != len(sent) {
		t.Errorf("Replay sent %d, want %d", n, len(sent))
	}
	waitCount(t, c, int64(len(sent)))
	c.Stop()

	p := samples.NewParser(path)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Samples) != len(sent) {
		t.Fatalf("recorded %d samples, want %d", len(p.Samples), len(sent))
	}
	for i := range sent {
		if p.Samples[i] != sent[i] {
			t.Errorf("sample %d = %+v, want %+v", i, p.Samples[i], sent[i])
		}
	}
}

func TestNewCollectorNeedsSink(t *testing.T) {
	if _, err := NewCollector("127.0.0.1:0", nil); !errors.Is(err, ErrNoSink) {
		t.Errorf("NewCollector(nil sink) error = %v, want ErrNoSink", err)
	}
}
