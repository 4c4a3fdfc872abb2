package main

import (
	"flag"
	"fmt"
	"log"

	"magcal-go/server"
)

func main() {
	inPath := flag.String("in", "mag_out.txt", "Input sample file")
	destAddr := flag.String("dest", "127.0.0.1:44333", "Destination UDP address")
	rate := flag.Float64("rate", 100, "Samples per second (0 for max speed)")
	batch := flag.Int("batch", 1, "Samples per datagram")
	flag.Parse()

	n, err := server.Replay(*inPath, *destAddr, *rate, *batch)
	if err != nil {
		log.Fatalf("Replay failed after %d samples: %v", n, err)
	}
	fmt.Printf("Done. Sent %d samples.\n", n)
}
