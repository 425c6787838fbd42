package scheme

import (
	"bytes"
	"encoding/xml"
)

// Style holds the colours and font of a rendered scheme.
type Style struct {
	Background string
	Stroke     string
	Text       string
	Frame      string
	FontFamily string
}

// DefaultStyle is black on transparent with a sans-serif font.
var DefaultStyle = Style{
	Background: "none",
	Stroke:     "#000000",
	Text:       "#000000",
	Frame:      "#9aa0a6",
	FontFamily: "Helvetica, Arial, sans-serif",
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
