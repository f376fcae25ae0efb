package styles

import (
	"bytes"
	"encoding/xml"
)

// EscapeXML escapes a string for safe embedding in SVG text content
// and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// TruncateLabel shortens a label to maxChars runes, appending ".." when
// truncation occurs. Labels shorter than four characters are never cut.
func TruncateLabel(label string, maxChars int) string {
	if maxChars < 4 {
		maxChars = 4
	}
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}
