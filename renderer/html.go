package renderer

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const htmlHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 1em; }
th, td { border: 1px solid #ccc; padding: 4px 8px; }
td[style*="right"] { font-variant-numeric: tabular-nums; }
</style>
</head>
<body>
`

// HTML converts a markdown report into a standalone HTML page.
func HTML(title, markdown string) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	fmt.Fprintf(&buf, htmlHead, html.EscapeString(title))
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("cannot convert report to HTML: %w", err)
	}
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
