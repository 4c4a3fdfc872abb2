package server

import (
	"log"
	"net"
	"time"

	"magcal-go/samples"
)

// Replay sends the samples stored at path to a collector at dest, batch
// samples per datagram, at rate samples per second (0 for no pacing).
// It returns the number of samples sent.
func Replay(path, dest string, rate float64, batch int) (int, error) {
	p := samples.NewParser(path)
	if err := p.Parse(); err != nil {
		return 0, err
	}
	raddr, err := net.ResolveUDPAddr("udp", dest)
	if err != nil {
		return 0, err
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	if batch < 1 {
		batch = 1
	}
	log.Printf("Replaying %d samples from %s to %s...", len(p.Samples), path, dest)

	start := time.Now()
	sent := 0
	for sent < len(p.Samples) {
		end := min(sent+batch, len(p.Samples))
		if rate > 0 {
			target := time.Duration(float64(sent) / rate * float64(time.Second))
			if elapsed := time.Since(start); target > elapsed {
				time.Sleep(target - elapsed)
			}
		}
		if _, err := conn.Write(EncodeDatagram(p.Samples[sent:end])); err != nil {
			return sent, err
		}
		sent = end
	}
	return sent, nil
}
