package svg

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"
)

const (
	fontCharWidth = 0.6
	fontSizeMin   = 8.0
	fontSizeMax   = 16.0
)

// FontSize returns a label size that fits inside the circle's diameter.
func FontSize(c Circle) float64 {
	n := max(1, utf8.RuneCountInString(c.Label))
	byWidth := (c.R * 1.6) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, byWidth))
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
