package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/kertal/git-vegas/internal/activity"
)

// Fallback when a label carries no color; GitHub's default label gray.
const defaultLabelColor = "ededed"

// labelPill renders one label as an inline-styled pill using the label's
// color as background and a black or white text color picked for contrast.
func labelPill(l activity.Label) string {
	bg := l.Color
	if bg == "" {
		bg = defaultLabelColor
	}
	bg = "#" + strings.TrimPrefix(bg, "#")
	return fmt.Sprintf(
		`<span style="background-color: %s; color: %s; padding: 2px 6px; border-radius: 10px; font-size: 12px; margin-right: 4px;">%s</span>`,
		bg, contrastColor(bg), html.EscapeString(l.Name))
}

// contrastColor picks black or white text for the given background so label
// names stay readable. The cut is perceptual lightness (CIE L*u*v*), not a
// naive RGB average, because mid-greens read much brighter than mid-blues.
func contrastColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#000000"
	}
	l, _, _ := c.Luv()
	if l > 0.55 {
		return "#000000"
	}
	return "#ffffff"
}
