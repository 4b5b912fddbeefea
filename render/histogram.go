package render

import (
	"errors"
	"io"

	"github.com/soypat/shapes/topology"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SamplingHistogram draws n samples from s and writes a PNG histogram of
// their first barycentric coordinate, normalized to unit area, next to
// the density 2(1-x) of uniformly distributed points.
func SamplingHistogram(w io.Writer, s *topology.Sampler, n, bins int) error {
	if n <= 0 || bins <= 0 {
		return errors.New("sample and bin count must be positive")
	}
	values := make(plotter.Values, n)
	for i := range values {
		_, bary := s.Sample()
		values[i] = bary[0]
	}
	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return err
	}
	h.Normalize(1)
	want := plotter.NewFunction(func(x float64) float64 { return 2 * (1 - x) })
	want.Width = vg.Points(2)

	p := plot.New()
	p.Title.Text = "Barycentric coordinate of surface samples"
	p.X.Label.Text = "b0"
	p.Y.Label.Text = "density"
	p.X.Min, p.X.Max = 0, 1
	p.Add(h, want)
	wt, err := p.WriterTo(4*vg.Inch, 3*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
