package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"magcal-go/calib"
	"magcal-go/samples"
	"magcal-go/server"
	"magcal-go/web"
)

func main() {
	port := flag.Int("port", 44333, "UDP port to listen on")
	httpPort := flag.Int("http", 0, "HTTP/WebSocket port (e.g. 8080). 0 to disable.")
	outPath := flag.String("out", "mag_out.txt", "Sample file to record into (a directory gets a timestamped name)")
	field := flag.Float64("field", calib.DefaultField, "Target field for fits posted to the viewer")
	flag.Parse()

	// Auto-generate name if directory
	path := *outPath
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = fmt.Sprintf("%s/MAG_%s.txt", path, time.Now().Format("20060102150405"))
	}
	sink, err := samples.NewWriter(path)
	if err != nil {
		log.Fatalf("Failed to create sample file: %v", err)
	}
	defer sink.Close()
	log.Printf("Recording samples to %s", path)

	collector, err := server.NewCollector(fmt.Sprintf(":%d", *port), sink)
	if err != nil {
		log.Fatalf("Failed to create UDP collector: %v", err)
	}

	if *httpPort > 0 {
		webSvr := web.NewServer(*field)
		go func() {
			if err := webSvr.Start(*httpPort); err != nil {
				log.Printf("HTTP server stopped: %v", err)
			}
		}()
		collector.SetWebHub(webSvr.Hub)
	}

	go collector.Start()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	collector.Stop()
	log.Printf("Recorded %d samples (%d rejected)", collector.Count(), collector.Rejected())
	for src, n := range collector.Sources() {
		log.Printf("  %s: %d", src, n)
	}
}
