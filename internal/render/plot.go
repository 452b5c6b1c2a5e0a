package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ironsheep/player-locator/internal/detection"
	"github.com/ironsheep/player-locator/internal/formation"
)

// PlotOptions controls a player chart.
type PlotOptions struct {
	Title string

	// XMax and YMax fix the axis extents; both axes start at 0.
	XMax float64
	YMax float64

	// Expected is the player count used to assign teams.
	Expected int

	// Edges are drawn as thin black segments beneath the discs.
	Edges []formation.Edge

	// Labels adds "ID n" above each disc.
	Labels bool

	Palette Palette
}

// ResultPlotOptions charts a full detection result over the whole frame.
func ResultPlotOptions(r *detection.DetectionResult) PlotOptions {
	return PlotOptions{
		Title:    "Detected Players (origin lower left)",
		XMax:     float64(r.ImageWidth),
		YMax:     float64(r.ImageHeight),
		Expected: r.Expected,
		Labels:   true,
		Palette:  DefaultPalette(),
	}
}

// NewPlot builds the chart without saving it.
func NewPlot(players []detection.Player, opts PlotOptions) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "X (px)"
	p.Y.Label.Text = "Y (px)"
	p.Add(plotter.NewGrid())

	byID := make(map[int]detection.Player, len(players))
	for _, pl := range players {
		byID[pl.ID] = pl
	}
	for _, e := range opts.Edges {
		from, okFrom := byID[e.From]
		to, okTo := byID[e.To]
		if !okFrom || !okTo {
			continue
		}
		line, err := plotter.NewLine(plotter.XYs{{X: from.X, Y: from.Y}, {X: to.X, Y: to.Y}})
		if err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", e.From, e.To, err)
		}
		line.Color = color.Black
		line.Width = vg.Points(0.5)
		p.Add(line)
	}

	p.Add(&discs{players: players, expected: opts.Expected, palette: opts.Palette})

	if opts.Labels && len(players) > 0 {
		xys := make(plotter.XYs, len(players))
		texts := make([]string, len(players))
		for i, pl := range players {
			xys[i] = plotter.XY{X: pl.X, Y: pl.Y + pl.Radius + 2}
			texts[i] = "ID " + strconv.Itoa(pl.ID)
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return nil, fmt.Errorf("labels: %w", err)
		}
		p.Add(labels)
	}

	p.X.Min, p.X.Max = 0, opts.XMax
	p.Y.Min, p.Y.Max = 0, opts.YMax
	return p, nil
}

// Plot saves the chart to path. The image format follows the extension.
func Plot(players []detection.Player, opts PlotOptions, path string) error {
	if opts.XMax <= 0 || opts.YMax <= 0 {
		return fmt.Errorf("invalid axis extents %vx%v", opts.XMax, opts.YMax)
	}
	p, err := NewPlot(players, opts)
	if err != nil {
		return err
	}

	w := 8 * vg.Inch
	h := vg.Length(math.Min(12, math.Max(4, 8*opts.YMax/opts.XMax))) * vg.Inch
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// discs draws each player as a translucent team disc with an outline.
type discs struct {
	players  []detection.Player
	expected int
	palette  Palette
}

const discSegments = 48

func (d *discs) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	outline := draw.LineStyle{Color: nrgba(d.palette.Outline, 1), Width: vg.Points(1)}

	for _, pl := range d.players {
		fill := nrgba(d.palette.Team(formation.TeamOf(pl.ID, d.expected)), fillAlpha)
		pts := make([]vg.Point, 0, discSegments+1)
		for i := 0; i <= discSegments; i++ {
			a := 2 * math.Pi * float64(i) / discSegments
			pts = append(pts, vg.Point{
				X: trX(pl.X + pl.Radius*math.Cos(a)),
				Y: trY(pl.Y + pl.Radius*math.Sin(a)),
			})
		}
		c.FillPolygon(fill, c.ClipPolygonXY(pts))
		c.StrokeLines(outline, c.ClipLinesXY(pts)...)
	}
}

// DataRange implements plot.DataRanger.
func (d *discs) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(d.players) == 0 {
		return 0, 0, 0, 0
	}
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, pl := range d.players {
		xmin = math.Min(xmin, pl.X-pl.Radius)
		xmax = math.Max(xmax, pl.X+pl.Radius)
		ymin = math.Min(ymin, pl.Y-pl.Radius)
		ymax = math.Max(ymax, pl.Y+pl.Radius)
	}
	return xmin, xmax, ymin, ymax
}
