// Package figure renders comparison figures from instrument traces with
// gonum/plot: a stacked temperature/field view sharing one elapsed-time
// axis, or a single panel for a raw trace.
package figure

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Trace is one curve: XY[0] elapsed times, XY[1] values.
type Trace struct {
	Label string
	XY    [][]float64
}

// Panel is one set of traces sharing a y axis.
type Panel struct {
	YLabel string
	Traces []Trace
}

// Options configure a figure.
type Options struct {
	Title  string
	XLabel string // defaults to "Time (s)"
	// XLimits overrides the x range as [min, max]; nil spans the data.
	XLimits []float64
	// Marks draws full-height vertical lines at these elapsed times,
	// annotating ramp-down events.
	Marks []float64
	// Slide bumps font sizes for presentation slides.
	Slide bool
}

const (
	panelWidth  = 10 * vg.Inch
	panelHeight = 5 * vg.Inch
)

// Comparison renders top over bottom on a shared x axis and saves
// base.<format> for each requested format (png, svg, pdf).
func Comparison(top, bottom Panel, opts Options, base string, formats []string) error {
	xmin, xmax := xRange(opts, top, bottom)

	topPlot, err := panelPlot(top, opts, xmin, xmax, true)
	if err != nil {
		return err
	}
	bottomPlot, err := panelPlot(bottom, opts, xmin, xmax, false)
	if err != nil {
		return err
	}

	if err := ensureDir(filepath.Dir(base)); err != nil {
		return err
	}

	for _, format := range formats {
		if err := writeStacked(topPlot, bottomPlot, format, base+"."+format); err != nil {
			return err
		}
	}
	return nil
}

// Single renders one panel and saves base.<format> for each format.
func Single(panel Panel, opts Options, base string, formats []string) error {
	xmin, xmax := xRange(opts, panel)

	p, err := panelPlot(panel, opts, xmin, xmax, false)
	if err != nil {
		return err
	}
	p.Title.Text = opts.Title

	if err := ensureDir(filepath.Dir(base)); err != nil {
		return err
	}

	for _, format := range formats {
		if err := p.Save(panelWidth, panelHeight, base+"."+format); err != nil {
			return fmt.Errorf("save %s: %w", base+"."+format, err)
		}
	}
	return nil
}

// panelPlot builds one panel. The top panel of a stacked figure carries the
// title and drops the x label, which the bottom panel repeats anyway.
func panelPlot(panel Panel, opts Options, xmin, xmax float64, top bool) (*plot.Plot, error) {
	xlabel := opts.XLabel
	if xlabel == "" {
		xlabel = "Time (s)"
	}
	if top {
		xlabel = ""
	}

	p := prepPlot(xlabel, panel.YLabel, opts.Slide)
	if top {
		p.Title.Text = opts.Title
	}

	p.X.Min = xmin
	p.X.Max = xmax

	ymin, ymax := yRange(panel)
	p.Y.Min = ymin
	p.Y.Max = ymax

	for i, tr := range panel.Traces {
		line, err := plotter.NewLine(buildXYs(tr.XY))
		if err != nil {
			return nil, fmt.Errorf("trace %q: %w", tr.Label, err)
		}
		line.Color = palette(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		if tr.Label != "" {
			p.Legend.Add(tr.Label, line)
		}
	}

	for _, mark := range opts.Marks {
		if err := addMark(p, mark, ymin, ymax); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func prepPlot(xlabel, ylabel string, slide bool) *plot.Plot {
	p := plot.New()
	p.BackgroundColor = color.White
	p.Title.TextStyle.Font.Typeface = "liberation"
	p.Title.TextStyle.Font.Variant = "Sans"

	p.X.Label.Text = xlabel
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.LineStyle.Width = vg.Points(1.5)
	p.X.Tick.LineStyle.Width = vg.Points(1.5)
	p.X.Tick.Label.Font.Variant = "Sans"

	p.Y.Label.Text = ylabel
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.LineStyle.Width = vg.Points(1.5)
	p.Y.Tick.LineStyle.Width = vg.Points(1.5)
	p.Y.Tick.Label.Font.Variant = "Sans"

	p.Legend.TextStyle.Font.Variant = "Sans"
	p.Legend.Top = true
	p.Legend.Padding = vg.Points(5)

	if slide {
		p.Title.TextStyle.Font.Size = 40
		p.Title.Padding = font.Length(30)
		p.X.Label.TextStyle.Font.Size = 28
		p.X.Tick.Label.Font.Size = 28
		p.Y.Label.TextStyle.Font.Size = 28
		p.Y.Tick.Label.Font.Size = 28
		p.Legend.TextStyle.Font.Size = 28
	} else {
		p.Title.TextStyle.Font.Size = 22
		p.Title.Padding = font.Length(15)
		p.X.Label.TextStyle.Font.Size = 16
		p.X.Tick.Label.Font.Size = 14
		p.Y.Label.TextStyle.Font.Size = 16
		p.Y.Tick.Label.Font.Size = 14
		p.Legend.TextStyle.Font.Size = 14
	}

	return p
}

// addMark draws a full-height vertical line at x.
func addMark(p *plot.Plot, x, ymin, ymax float64) error {
	mark := make(plotter.XYs, 2)
	mark[0].X = x
	mark[0].Y = ymin
	mark[1].X = x
	mark[1].Y = ymax

	line, err := plotter.NewLine(mark)
	if err != nil {
		return fmt.Errorf("mark at %g: %w", x, err)
	}
	line.Color = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(line)
	return nil
}

func buildXYs(xy [][]float64) plotter.XYs {
	pts := make(plotter.XYs, len(xy[0]))
	for i := range xy[0] {
		pts[i].X = xy[0][i]
		pts[i].Y = xy[1][i]
	}
	return pts
}

func xRange(opts Options, panels ...Panel) (float64, float64) {
	if len(opts.XLimits) == 2 {
		return opts.XLimits[0], opts.XLimits[1]
	}

	set := false
	xmin, xmax := 0., 0.
	for _, panel := range panels {
		for _, tr := range panel.Traces {
			for _, x := range tr.XY[0] {
				if !set {
					xmin, xmax = x, x
					set = true
					continue
				}
				if x < xmin {
					xmin = x
				}
				if x > xmax {
					xmax = x
				}
			}
		}
	}
	return xmin, xmax
}

func yRange(panel Panel) (float64, float64) {
	set := false
	ymin, ymax := 0., 1.
	for _, tr := range panel.Traces {
		for _, y := range tr.XY[1] {
			if !set {
				ymin, ymax = y, y
				set = true
				continue
			}
			if y < ymin {
				ymin = y
			}
			if y > ymax {
				ymax = y
			}
		}
	}
	// breathing room above and below
	pad := (ymax - ymin) / 16
	if pad == 0 {
		pad = 1
	}
	return ymin - pad, ymax + pad
}

func palette(brush int) color.RGBA {
	col := []color.RGBA{
		{R: 31, G: 211, B: 172, A: 255},
		{R: 255, G: 122, B: 180, A: 255},
		{R: 122, G: 156, B: 255, A: 255},
		{R: 255, G: 182, B: 110, A: 255},
		{R: 11, G: 191, B: 222, A: 255},
	}
	return col[brush%len(col)]
}

// writeStacked composes the two panels on one canvas and writes it out.
func writeStacked(top, bottom *plot.Plot, format, path string) error {
	width := panelWidth
	height := 2 * panelHeight

	render := func(dc draw.Canvas) {
		tiles := draw.Tiles{
			Rows: 2,
			Cols: 1,
			PadY: vg.Millimeter * 3,
		}
		canvases := plot.Align([][]*plot.Plot{{top}, {bottom}}, tiles, dc)
		top.Draw(canvases[0][0])
		bottom.Draw(canvases[1][0])
	}

	switch format {
	case "png", "svg", "pdf":
	default:
		return fmt.Errorf("save %s: unknown format %q", path, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case "png":
		img := vgimg.New(width, height)
		render(draw.New(img))
		png := vgimg.PngCanvas{Canvas: img}
		if _, err := png.WriteTo(f); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	case "svg":
		c := vgsvg.New(width, height)
		render(draw.New(c))
		if _, err := c.WriteTo(f); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	case "pdf":
		c := vgpdf.New(width, height)
		render(draw.New(c))
		if _, err := c.WriteTo(f); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}

	return nil
}

// OutDir names a per-invocation output directory under plotsDir, a folder
// per day and one per run time.
func OutDir(plotsDir, note string, now time.Time) string {
	name := now.Format("15.04.05")
	if note != "" {
		name += " " + note
	}
	return filepath.Join(plotsDir, now.Format("2006-Jan-02"), name)
}

func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}
