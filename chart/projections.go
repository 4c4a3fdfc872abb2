package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"magcal-go/calib"
)

var (
	rawRGBA       = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	correctedRGBA = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
)

// plane selects two coordinates of a sample.
type plane struct {
	name string
	pick func(calib.Sample) (float64, float64)
}

var planes = []plane{
	{"XY", func(s calib.Sample) (float64, float64) { return s.X, s.Y }},
	{"XZ", func(s calib.Sample) (float64, float64) { return s.X, s.Z }},
	{"YZ", func(s calib.Sample) (float64, float64) { return s.Y, s.Z }},
}

// Projections writes the XY, XZ and YZ projections of both clouds side by
// side as a PNG image.
func Projections(w io.Writer, raw, corrected []calib.Sample) error {
	const side = 4 * vg.Inch
	img := vgimg.New(vg.Length(len(planes))*side, side)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 1, Cols: len(planes)}

	for i, pl := range planes {
		p, err := projection(pl, raw, corrected)
		if err != nil {
			return err
		}
		p.Draw(tiles.At(dc, i, 0))
	}

	png := vgimg.PngCanvas{Canvas: img}
	_, err := png.WriteTo(w)
	return err
}

func projection(pl plane, raw, corrected []calib.Sample) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = pl.name
	p.X.Label.Text = pl.name[:1]
	p.Y.Label.Text = pl.name[1:]
	p.Add(plotter.NewGrid())

	for _, series := range []struct {
		name    string
		samples []calib.Sample
		color   color.Color
	}{
		{"raw", raw, rawRGBA},
		{"corrected", corrected, correctedRGBA},
	} {
		if len(series.samples) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(series.samples))
		for i, s := range series.samples {
			xys[i].X, xys[i].Y = pl.pick(s)
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("chart: %s %s: %w", pl.name, series.name, err)
		}
		sc.GlyphStyle.Color = series.color
		sc.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(sc)
		p.Legend.Add(series.name, sc)
	}
	return p, nil
}
