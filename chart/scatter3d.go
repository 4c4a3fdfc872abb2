// Package chart draws raw and corrected sample clouds.
package chart

import (
	"io"
	"log"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"magcal-go/calib"
)

const (
	rawColor       = "#d62728"
	correctedColor = "#2ca02c"
)

// Scatter3D renders an HTML page with both clouds in one 3-D scatter. Either
// slice may be empty.
func Scatter3D(w io.Writer, raw, corrected []calib.Sample) error {
	return page(raw, corrected).Render(w)
}

// Handler serves the page for the clouds returned by load at request time.
func Handler(load func() (raw, corrected []calib.Sample)) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		raw, corrected := load()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := Scatter3D(w, raw, corrected); err != nil {
			log.Printf("chart: scatter: %v", err)
		}
	}
}

func page(raw, corrected []calib.Sample) *components.Page {
	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Magnetometer calibration",
			Theme:     types.ThemeWesteros,
			Width:     "900px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Magnetometer samples",
			Subtitle: "raw (red) and corrected (green)",
		}),
		charts.WithLegendOpts(opts.Legend{
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
		}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z"}),
	)
	scatter.AddSeries("raw", points(raw),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: rawColor}))
	scatter.AddSeries("corrected", points(corrected),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: correctedColor}))

	p := components.NewPage()
	p.AddCharts(scatter)
	return p
}

func points(samples []calib.Sample) []opts.Chart3DData {
	out := make([]opts.Chart3DData, len(samples))
	for i, s := range samples {
		out[i] = opts.Chart3DData{Value: []interface{}{s.X, s.Y, s.Z}}
	}
	return out
}
