// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/kortschak/ccsjoin/join"
)

// PlotMovies renders a bar chart of matched and unmatched CCS rows for each
// movie in st to path. The image format is taken from the path extension:
// eps, jpg, jpeg, pdf, png, svg, tif or tiff.
func PlotMovies(path string, st *join.Stats) error {
	if len(st.Movies) == 0 {
		return ErrNoMovies
	}

	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = "CCS rows per movie"
	p.Y.Label.Text = "rows"

	names := make([]string, len(st.Movies))
	matched := make(plotter.Values, len(st.Movies))
	unmatched := make(plotter.Values, len(st.Movies))
	for i, m := range st.Movies {
		names[i] = m.Movie
		matched[i] = float64(m.Matched)
		unmatched[i] = float64(m.Unmatched)
	}

	const barWidth = vg.Length(12)
	mb, err := plotter.NewBarChart(matched, barWidth)
	if err != nil {
		return err
	}
	mb.LineStyle.Width = 0
	mb.Color = plotutil.Color(0)
	mb.Offset = -barWidth / 2

	ub, err := plotter.NewBarChart(unmatched, barWidth)
	if err != nil {
		return err
	}
	ub.LineStyle.Width = 0
	ub.Color = plotutil.Color(1)
	ub.Offset = barWidth / 2

	p.Add(mb, ub)
	p.Legend.Add("matched", mb)
	p.Legend.Add("unmatched", ub)
	p.Legend.Top = true
	p.NominalX(names...)

	width := 3 * barWidth * vg.Length(len(names))
	if width < 12*vg.Centimeter {
		width = 12 * vg.Centimeter
	}
	return p.Save(width, 10*vg.Centimeter, path)
}
