package styles

import (
	"bytes"
	"encoding/xml"
	"strings"
)

const (
	fontHeightRatio = 0.7
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 14.0
)

// FontSize returns the largest font size, clamped to [8, 14], at which the
// longest line of text fits inside b.
func FontSize(b Box, text string) float64 {
	lines := strings.Split(text, "\n")
	longest := 1
	for _, l := range lines {
		longest = max(longest, len([]rune(l)))
	}
	byHeight := b.H * fontHeightRatio / float64(len(lines))
	byWidth := b.W / (float64(longest) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
