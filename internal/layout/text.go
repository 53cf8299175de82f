package layout

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// TextBounds represents the dimensions of a text element
type TextBounds struct {
	Width  float64
	Height float64
}

// EstimateTextBounds calculates the approximate bounding box of one line of text.
// Uses conservative estimates with an average character width of 0.7 * fontSize
// and a line height of 1.5 * fontSize.
func EstimateTextBounds(text string, fontSize float64) TextBounds {
	avgCharWidth := fontSize * 0.7
	lineHeight := fontSize * 1.5

	return TextBounds{
		Width:  float64(len([]rune(text))) * avgCharWidth,
		Height: lineHeight,
	}
}

// EstimateWrappedTextBounds calculates bounds for wrapped text, using a tighter
// 1.2 * fontSize line height between wrapped lines.
func EstimateWrappedTextBounds(lines []string, fontSize float64) TextBounds {
	maxWidth := 0.0
	for _, line := range lines {
		if w := EstimateTextBounds(line, fontSize).Width; w > maxWidth {
			maxWidth = w
		}
	}
	return TextBounds{
		Width:  maxWidth,
		Height: float64(len(lines)) * fontSize * 1.2,
	}
}

// WrapLabel wraps text at limit characters. Words are never broken, so a
// single long word stays on its own line. Empty text yields no lines.
func WrapLabel(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if limit <= 0 {
		return []string{text}
	}
	return strings.Split(wordwrap.String(text, limit), "\n")
}
