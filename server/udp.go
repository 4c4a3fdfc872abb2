package server

import (
	"errors"
	"log"
	"net"
	"sync"
	"sync/atomic"

	"magcal-go/calib"
	"magcal-go/samples"
	"magcal-go/web"
)

const (
	DefaultAddr   = ":44333"
	MaxPacketSize = 65535
)

// Collector receives raw magnetometer samples over UDP and appends them to
// a sample file. It only records; fitting happens offline.
type Collector struct {
	conn    *net.UDPConn
	sink    *samples.Writer
	webHub  *web.Hub
	running atomic.Bool

	received atomic.Int64
	rejected atomic.Int64

	// samples per sender address
	mu      sync.Mutex
	sources map[string]int
}

// ErrNoSink is returned by NewCollector when no sample writer is given.
var ErrNoSink = errors.New("server: collector needs a sample writer")

func NewCollector(addr string, sink *samples.Writer) (*Collector, error) {
	if sink == nil {
		return nil, ErrNoSink
	}
	if addr == "" {
		addr = DefaultAddr
	}
	uaddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", uaddr)
	if err != nil {
		return nil, err
	}
	conn.SetReadBuffer(256 * 1024)

	return &Collector{
		conn:    conn,
		sink:    sink,
		sources: make(map[string]int),
	}, nil
}

func (c *Collector) SetWebHub(h *web.Hub) {
	c.webHub = h
}

func (c *Collector) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// Count returns the number of samples recorded so far.
func (c *Collector) Count() int64 { return c.received.Load() }

// Rejected returns the number of records that failed to parse.
func (c *Collector) Rejected() int64 { return c.rejected.Load() }

// Sources returns the per-sender sample counts.
func (c *Collector) Sources() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.sources))
	for k, v := range c.sources {
		out[k] = v
	}
	return out
}

// Start reads datagrams until Stop is called.
func (c *Collector) Start() {
	c.running.Store(true)
	buf := make([]byte, MaxPacketSize)
	log.Printf("UDP collector listening on %s", c.conn.LocalAddr().String())

	for c.running.Load() {
		n, addr, err := c.conn.ReadFromUDP(buf)
		if err != nil {
			if c.running.Load() {
				log.Printf("Read error: %v", err)
			}
			continue
		}
		c.handlePacket(buf[:n], addr)
	}
}

func (c *Collector) Stop() {
	c.running.Store(false)
	c.conn.Close()
	if err := c.sink.Flush(); err != nil {
		log.Printf("flush samples: %v", err)
	}
}

func (c *Collector) handlePacket(data []byte, addr *net.UDPAddr) {
	got, errs := DecodeDatagram(data)
	for _, err := range errs {
		log.Printf("sample from %s dropped: %v", addr, err)
	}
	c.rejected.Add(int64(len(errs)))
	if len(got) == 0 {
		return
	}

	for _, s := range got {
		if err := c.sink.Write(s); err != nil {
			log.Printf("write sample: %v", err)
			return
		}
	}
	c.received.Add(int64(len(got)))

	c.mu.Lock()
	c.sources[addr.String()] += len(got)
	c.mu.Unlock()

	if c.webHub != nil {
		if err := c.webHub.Publish("samples", wsSamples(got)); err != nil {
			log.Printf("publish samples: %v", err)
		}
	}
}

type wsSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func wsSamples(s []calib.Sample) []wsSample {
	out := make([]wsSample, len(s))
	for i, v := range s {
		out[i] = wsSample{X: v.X, Y: v.Y, Z: v.Z}
	}
	return out
}
