package main

import (
	"flag"
	"log"

	"magcal-go/calib"
	"magcal-go/samples"
	"magcal-go/web"
)

func main() {
	httpPort := flag.Int("http", 8080, "HTTP/WebSocket port")
	field := flag.Float64("field", calib.DefaultField, "Default target field for POST /fit")
	preload := flag.String("in", "", "Sample file to fit at startup (optional)")
	flag.Parse()

	webSvr := web.NewServer(*field)
	if *preload != "" {
		parser := samples.NewParser(*preload)
		if err := parser.Parse(); err != nil {
			log.Fatalf("Failed to read samples: %v", err)
		}
		report, err := calib.Calibrate(parser.Samples, *field)
		if err != nil {
			log.Fatalf("Calibration of %s failed (%s): %v; %s", *preload, calib.Kind(err), err, calib.Remedy(err))
		}
		webSvr.Publish(report, parser.Samples)
		log.Printf("Fitted %d samples from %s", report.Samples, *preload)
	}
	log.Fatal(webSvr.Start(*httpPort))
}
