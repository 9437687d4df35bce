package render

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/0x0FACED/fortune-sweep/pkg/voronoi"
)

const (
	parabolaSamples = 48
	circleSamples   = 64
)

// Series names; the page legend toggles them.
const (
	SeriesSites     = "Sites"
	SeriesVertices  = "Vertices"
	SeriesEdges     = "Edges"
	SeriesOpenEdges = "Open edges"
	SeriesBeachline = "Beachline"
	SeriesSweep     = "Sweep line"
	SeriesCircles   = "Circle events"
)

type Options struct {
	Width, Height int
	// XMax and YMax bound the drawn plane; the sweep line spans [0, XMax].
	XMax, YMax    float64
	ShowCircles   bool
	ShowParabolas bool
}

func prepareScatter(scatter *charts.Scatter, o Options, sweep float64) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: fmt.Sprintf("%dpx", o.Height),
			Width:  fmt.Sprintf("%dpx", o.Width),
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                fmt.Sprintf("Voronoi sweep at y = %.2f", sweep),
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "x",
			Min:  0,
			Max:  o.XMax,
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "y",
			Min:  0,
			Max:  o.YMax,
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// Chart draws a snapshot: sites and vertices as points, edges, the beachline,
// the sweep line and pending circle events as lines.
func Chart(snap voronoi.Snapshot, o Options) *charts.Scatter {
	scatter := charts.NewScatter()
	prepareScatter(scatter, o, snap.Sweep)

	sites := make([]opts.ScatterData, 0, len(snap.Sites))
	for _, s := range snap.Sites {
		sites = append(sites, opts.ScatterData{Value: []float64{s.X, s.Y}})
	}
	scatter.AddSeries(SeriesSites, sites).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	var vertices []opts.ScatterData
	for _, n := range snap.Nodes {
		if n.Fixed {
			vertices = append(vertices, opts.ScatterData{Value: []float64{n.At.X, n.At.Y}})
		}
	}
	scatter.AddSeries(SeriesVertices, vertices).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "orange",
			}),
		)

	for _, e := range snap.Edges {
		name, style := SeriesEdges, opts.LineStyle{Width: 2, Color: "deepskyblue"}
		if !e.Final {
			name, style = SeriesOpenEdges, opts.LineStyle{Width: 1, Color: "lightblue", Type: "dashed"}
		}
		scatter.Overlap(polyline(name, []voronoi.Point{e.A, e.B}, style))
	}

	if o.ShowParabolas {
		for _, pts := range beachline(snap, o) {
			scatter.Overlap(polyline(SeriesBeachline, pts, opts.LineStyle{Width: 1, Color: "gold"}))
		}
	}

	scatter.Overlap(polyline(SeriesSweep,
		[]voronoi.Point{{X: 0, Y: snap.Sweep}, {X: o.XMax, Y: snap.Sweep}},
		opts.LineStyle{Width: 1, Color: "red"},
	))

	if o.ShowCircles {
		for _, c := range snap.CircleEvents {
			scatter.Overlap(polyline(SeriesCircles, circle(c.Circle), opts.LineStyle{Width: 1, Color: "violet", Type: "dotted"}))
		}
	}
	return scatter
}

// Render writes the chart of snap as an HTML page.
func Render(w io.Writer, snap voronoi.Snapshot, o Options) error {
	return Chart(snap, o).Render(w)
}

func polyline(name string, pts []voronoi.Point, style opts.LineStyle) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
	)
	data := make([]opts.LineData, len(pts))
	for i, p := range pts {
		data[i] = opts.LineData{Value: []float64{p.X, p.Y}}
	}
	line.AddSeries(name, data).SetSeriesOptions(
		charts.WithLineStyleOpts(style),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
	)
	return line
}

// beachline samples every defined arc between its breakpoints. Points above
// the top of the plane are dropped.
func beachline(snap voronoi.Snapshot, o Options) [][]voronoi.Point {
	var out [][]voronoi.Point
	for _, a := range snap.Arcs {
		if !a.Defined {
			continue
		}
		from, to := 0.0, o.XMax
		if a.Left != voronoi.NoBreakpoint {
			from = math.Max(from, snap.Breakpoints[a.Left].At.X)
		}
		if a.Right != voronoi.NoBreakpoint {
			to = math.Min(to, snap.Breakpoints[a.Right].At.X)
		}
		if !(from < to) {
			continue
		}

		var pts []voronoi.Point
		for i := 0; i <= parabolaSamples; i++ {
			x := from + (to-from)*float64(i)/parabolaSamples
			y := a.Parabola.Eval(x)
			if y < 0 {
				continue
			}
			pts = append(pts, voronoi.Point{X: x, Y: y})
		}
		if len(pts) > 1 {
			out = append(out, pts)
		}
	}
	return out
}

func circle(c voronoi.Circle) []voronoi.Point {
	pts := make([]voronoi.Point, circleSamples+1)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSamples
		pts[i] = voronoi.Point{
			X: c.Center.X + c.Radius*math.Cos(a),
			Y: c.Center.Y + c.Radius*math.Sin(a),
		}
	}
	return pts
}
