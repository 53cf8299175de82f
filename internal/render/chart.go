package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"scanline/internal/config"
	"scanline/internal/intensity"
	"scanline/internal/timecode"
)

// ErrEmptyPlot is returned when there is nothing to chart.
var ErrEmptyPlot = errors.New("intensity plot has no points")

// Chart formats accepted by IntensityChart.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// IntensityChart renders the intensity curve with one annotation per
// labelled beat. The y axis is fixed at 0..100.
func IntensityChart(w io.Writer, plot intensity.Plot, title, format string, cfg config.Config) error {
	if len(plot.Points) == 0 {
		return ErrEmptyPlot
	}

	var provider chart.RendererProvider
	switch strings.ToLower(format) {
	case "", FormatSVG:
		provider = chart.SVG
	case FormatPNG:
		provider = chart.PNG
	default:
		return fmt.Errorf("unsupported chart format %q", format)
	}

	xs := make([]float64, len(plot.Points))
	ys := make([]float64, len(plot.Points))
	var notes []chart.Value2
	for i, pt := range plot.Points {
		xs[i] = pt.Minutes
		ys[i] = pt.Intensity
		if pt.Label != "" {
			notes = append(notes, chart.Value2{XValue: pt.Minutes, YValue: pt.Intensity, Label: pt.Label})
		}
	}

	// a single beat still needs a non-zero x range
	lo, hi := plot.Lo, plot.Hi
	if hi <= lo {
		lo, hi = lo-1, hi+1
	}

	stroke := hexColor(cfg.Colors.Intensity)
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "intensity",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: stroke,
				StrokeWidth: 2,
				DotColor:    stroke,
				DotWidth:    3,
			},
		},
	}
	if len(notes) > 0 {
		series = append(series, chart.AnnotationSeries{Annotations: notes})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  cfg.Plot.Width,
		Height: cfg.Plot.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "runtime",
			Range:          &chart.ContinuousRange{Min: lo, Max: hi},
			ValueFormatter: minutesFormatter,
		},
		YAxis: chart.YAxis{
			Name:  "intensity",
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: series,
	}
	return graph.Render(provider, w)
}

func minutesFormatter(v interface{}) string {
	m, ok := v.(float64)
	if !ok {
		return ""
	}
	return timecode.Format(time.Duration(m * float64(time.Minute)))
}

func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}
