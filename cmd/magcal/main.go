package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"magcal-go/calib"
	"magcal-go/chart"
	"magcal-go/samples"
	"magcal-go/snippet"
	"magcal-go/web"
)

func main() {
	configPath := flag.String("config", "", "YAML calibration profile (optional)")
	in := flag.String("in", "", "Input sample file (default mag_out.txt)")
	out := flag.String("out", "", "Output file for corrected samples (default out.txt)")
	field := flag.Float64("field", 0, "Target field magnitude in raw units (default 110)")
	totalNT := flag.Float64("total-nt", 0, "Local total field intensity in nT; derives -field")
	gain := flag.Float64("gain", 0, "Sensor gain in LSB/Gauss (with -total-nt)")
	rangeGa := flag.Float64("range-ga", 1.3, "HMC5883L range setting in Gauss (with -total-nt, when -gain is unset)")
	lang := flag.String("lang", "", "Snippet language: c or go")
	chartPath := flag.String("chart", "", "Write a 3-D scatter HTML page of raw vs corrected samples")
	pngPath := flag.String("png", "", "Write XY/XZ/YZ projections as PNG")
	httpPort := flag.Int("http", 0, "Serve the result over HTTP/WebSocket on this port. 0 to disable.")
	flag.Parse()

	cfg := calib.DefaultConfig()
	if *configPath != "" {
		c, err := calib.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = c
	}

	// Flags given on the command line win over the profile.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.Input = *in
		case "out":
			cfg.Output = *out
		case "field":
			cfg.Field = *field
		case "total-nt":
			cfg.TotalNT = *totalNT
		case "gain":
			cfg.Gain = *gain
		case "range-ga":
			cfg.RangeGa = *rangeGa
		case "lang":
			cfg.Lang = *lang
		case "chart":
			cfg.Chart = *chartPath
		case "png":
			cfg.Projections = *pngPath
		}
	})
	if cfg.TotalNT != 0 && cfg.Gain == 0 && cfg.RangeGa == 0 {
		cfg.RangeGa = *rangeGa
	}

	target, err := cfg.TargetField()
	if err != nil {
		fail(err)
	}

	parser := samples.NewParser(cfg.Input)
	if err := parser.Parse(); err != nil {
		log.Fatalf("Failed to read samples: %v", err)
	}
	raw := parser.Samples
	fmt.Printf("shape of data: (%d, 3)\n", len(raw))
	printRows("First 5 rows raw:", raw)

	report, err := calib.Calibrate(raw, target)
	if err != nil {
		fail(err)
	}
	t := report.Transform

	fmt.Println("Soft iron transformation matrix:")
	for _, row := range t.SoftIron {
		fmt.Printf("  [% .9f % .9f % .9f]\n", row[0], row[1], row[2])
	}
	fmt.Printf("Hard iron bias:\n  [% .9f % .9f % .9f]\n", t.Offset[0], t.Offset[1], t.Offset[2])
	fmt.Printf("Corrected radius: mean %.4f, std %.4f, min %.4f, max %.4f (target %g)\n",
		report.Radius.Mean, report.Radius.StdDev, report.Radius.Min, report.Radius.Max, target)

	corrected := calib.Apply(raw, t)
	printRows("First 5 rows calibrated:", corrected)
	if err := writeSamples(cfg.Output, corrected); err != nil {
		log.Fatalf("Failed to write %s: %v", cfg.Output, err)
	}

	code, err := snippet.Format(cfg.Lang, t)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println("*************************")
	fmt.Println("code to paste : ")
	fmt.Println("*************************")
	os.Stdout.Write(code)

	if cfg.Chart != "" {
		if err := writeFile(cfg.Chart, func(f *os.File) error { return chart.Scatter3D(f, raw, corrected) }); err != nil {
			log.Fatalf("Failed to write chart: %v", err)
		}
		log.Printf("Wrote 3-D scatter to %s", cfg.Chart)
	}
	if cfg.Projections != "" {
		if err := writeFile(cfg.Projections, func(f *os.File) error { return chart.Projections(f, raw, corrected) }); err != nil {
			log.Fatalf("Failed to write projections: %v", err)
		}
		log.Printf("Wrote projections to %s", cfg.Projections)
	}

	if *httpPort > 0 {
		webSvr := web.NewServer(target)
		webSvr.Publish(report, raw)
		log.Fatal(webSvr.Start(*httpPort))
	}
}

// fail reports a fit failure with its remedy and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "calibration failed (%s): %v\n", calib.Kind(err), err)
	if hint := calib.Remedy(err); hint != "" {
		fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
	}
	os.Exit(1)
}

func printRows(title string, s []calib.Sample) {
	fmt.Println(title)
	for i := 0; i < len(s) && i < 5; i++ {
		fmt.Printf("  [% f % f % f]\n", s[i].X, s[i].Y, s[i].Z)
	}
}

func writeSamples(path string, s []calib.Sample) error {
	w, err := samples.NewWriter(path)
	if err != nil {
		return err
	}
	if err := w.WriteAll(s); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func writeFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
