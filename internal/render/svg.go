package render

import (
	"fmt"
	"strings"

	"scanline/internal/config"
	"scanline/internal/highlight"
	"scanline/internal/layout"
	"scanline/internal/scan"
	"scanline/internal/tooltip"
)

// Options selects what to overlay on the static timeline.
type Options struct {
	Frame *scan.Frame // highlight states and scan line; nil draws an idle timeline
	Hover string      // item ID to show the tooltip for
}

// SVG draws the scene. Marker classes carry the highlight state
// (idle, approaching, peak, fading) so a stylesheet can animate them.
func SVG(s Scene, cfg config.Config, o Options) string {
	var svg strings.Builder
	width := s.Layout.Width
	fs := cfg.Font.Size

	fmt.Fprintf(&svg, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%g" height="%g" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.title-text { font-family: %s; font-size: %gpx; font-weight: bold; fill: %s; }
.row-text { font-family: %s; font-size: %gpx; fill: %s; }
.sub-text { font-family: %s; font-size: %gpx; fill: %s; }
.item-text { font-family: %s; font-size: %gpx; fill: %s; }
.marker { stroke: %s; stroke-width: 1; }
.marker.idle { fill: %s; }
.marker.approaching { fill: %s; }
.marker.peak { fill: %s; }
.marker.fading { fill: %s; }
</style>
</defs>
`, width, s.Height, cfg.Colors.Background,
		cfg.Font.Family, fs+4, cfg.Colors.Text,
		cfg.Font.Family, fs+1, cfg.Colors.Text,
		cfg.Font.Family, fs-2, cfg.Colors.Muted,
		cfg.Font.Family, fs, cfg.Colors.Text,
		cfg.Colors.Background,
		cfg.Colors.Marker, cfg.Colors.Approaching, cfg.Colors.Peak, cfg.Colors.Fading)

	if s.Title != "" {
		fmt.Fprintf(&svg, `<text class="title-text" x="%g" y="%g">%s</text>`+"\n",
			cfg.Layout.MarginLeft, fs+4, escapeXML(s.Title))
	}

	for _, p := range s.Pills {
		drawPill(&svg, p, cfg)
	}

	for _, row := range s.Layout.Rows {
		fmt.Fprintf(&svg, `<text class="row-text" x="%g" y="%g">%s</text>`+"\n",
			cfg.Layout.MarginLeft, row.MarkerY+fs/3, escapeXML(row.Label))
		if row.SubLabel != "" {
			fmt.Fprintf(&svg, `<text class="sub-text" x="%g" y="%g">%s</text>`+"\n",
				cfg.Layout.MarginLeft, row.MarkerY+fs+2, escapeXML(row.SubLabel))
		}
		fmt.Fprintf(&svg, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="2"/>`+"\n",
			s.Layout.TrackX0, row.MarkerY, s.Layout.TrackX1, row.MarkerY, cfg.Colors.Track)
	}

	for _, box := range s.Layout.Items {
		state := highlight.Idle
		if o.Frame != nil {
			state = o.Frame.State(box.ID)
		}
		var color string
		if item, ok := s.Timeline.Item(box.ID); ok {
			color = item.Color
		}
		drawItem(&svg, box, color, state, cfg)
	}

	if o.Frame != nil {
		x := s.ScanX(o.Frame.Scan)
		fmt.Fprintf(&svg, `<line class="scan-line" x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="2" stroke-opacity="0.8"/>`+"\n",
			x, cfg.Layout.MarginTop, x, s.Layout.Height, cfg.Colors.ScanLine)
	}

	if o.Hover != "" {
		drawTooltip(&svg, s, o.Hover, cfg)
	}

	svg.WriteString("</svg>")
	return svg.String()
}

func drawItem(svg *strings.Builder, box layout.ItemBox, color string, state highlight.State, cfg config.Config) {
	if c := box.Connector; c != nil {
		fmt.Fprintf(svg, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="1"/>`+"\n",
			c.X1, c.Y1, c.X2, c.Y2, cfg.Colors.Muted)
	}

	r := cfg.Timeline.MarkerRadius
	if state == highlight.Peak {
		r *= 1.5
	}
	// an item color only overrides the idle fill
	fill := ""
	if color != "" && state == highlight.Idle {
		fill = fmt.Sprintf(` fill="%s"`, color)
	}
	fmt.Fprintf(svg, `<circle class="marker %s" data-marker-id="%s" cx="%g" cy="%g" r="%g"%s/>`+"\n",
		state, escapeXML(box.ID), box.X, box.MarkerY, r, fill)

	lineHeight := cfg.Font.Size * 1.2
	for i, line := range box.Lines {
		fmt.Fprintf(svg, `<text class="item-text" x="%g" y="%g" text-anchor="middle">%s</text>`+"\n",
			box.Text.CenterX(), box.Text.Y+float64(i+1)*lineHeight-cfg.Font.Size*0.2, escapeXML(line))
	}
}

func drawPill(svg *strings.Builder, p layout.Pill, cfg config.Config) {
	b := p.Box
	fmt.Fprintf(svg, `<rect class="pill" x="%g" y="%g" width="%g" height="%g" rx="%g" fill="none" stroke="%s"/>`+"\n",
		b.X, b.Y, b.W, b.H, b.H/2, cfg.Colors.Approaching)
	label := p.Label
	if fit := int(b.W / (cfg.Font.Size * 0.6)); fit > 1 && len([]rune(label)) > fit {
		label = string([]rune(label)[:fit-1]) + "…"
	}
	fmt.Fprintf(svg, `<text class="sub-text" x="%g" y="%g" text-anchor="middle">%s</text>`+"\n",
		b.CenterX(), b.Y+b.H*0.7, escapeXML(label))
}

func drawTooltip(svg *strings.Builder, s Scene, id string, cfg config.Config) {
	box, ok := s.Layout.Box(id)
	if !ok {
		return
	}
	item, ok := s.Timeline.Item(id)
	if !ok {
		return
	}
	size := cfg.TooltipSize()
	pos := tooltip.Position(tooltip.Point{X: box.X, Y: box.MarkerY}, s.Layout.Width, size, cfg.Tooltip.Margin)
	fmt.Fprintf(svg, `<g class="tooltip"><rect x="%g" y="%g" width="%g" height="%g" rx="4" fill="%s" stroke="%s"/>`+"\n",
		pos.X, pos.Y, size.W, size.H, cfg.Colors.Background, cfg.Colors.Muted)

	lineHeight := cfg.Font.Size * 1.2
	y := pos.Y + lineHeight
	fmt.Fprintf(svg, `<text class="item-text" x="%g" y="%g" font-weight="bold">%s</text>`+"\n",
		pos.X+8, y, escapeXML(item.Label))
	chars := int((size.W - 16) / (cfg.Font.Size * 0.6))
	for _, line := range layout.WrapLabel(item.Description, chars) {
		y += lineHeight
		if y > pos.Y+size.H {
			break
		}
		fmt.Fprintf(svg, `<text class="sub-text" x="%g" y="%g">%s</text>`+"\n", pos.X+8, y, escapeXML(line))
	}
	svg.WriteString("</g>\n")
}

// escapeXML escapes special XML characters in a string to ensure valid SVG output.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
