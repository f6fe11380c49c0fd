package printer

import (
	"html/template"
	"io"
	"strings"
)

// PrintWidthPx is the on-screen width of the print view and of the raster image.
const PrintWidthPx = 300

var printTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { margin: 0; background: #fff; }
  .receipt { width: {{.Width}}px; padding: 10px; box-sizing: border-box;
    font-family: "Courier New", Courier, monospace; font-size: 12px; line-height: 1.35; color: #000; }
  .line { white-space: pre; overflow: hidden; }
  .center { text-align: center; }
  .right { text-align: right; }
  .bold { font-weight: bold; }
  @media print { @page { size: 80mm auto; margin: 0; } }
</style>
</head>
<body onload="window.print()">
<div class="receipt">
{{- range .Lines}}
<div class="line{{if eq .Align 1}} center{{else if eq .Align 2}} right{{end}}{{if .Bold}} bold{{end}}">{{if .Text}}{{.Text}}{{else}}&nbsp;{{end}}</div>
{{- end}}
</div>
</body>
</html>
`))

// RenderHTML writes a self-printing HTML page of the document, 300px wide.
func RenderHTML(w io.Writer, doc *Document, title string) error {
	if strings.TrimSpace(title) == "" {
		title = "Receipt"
	}
	return printTemplate.Execute(w, struct {
		Title string
		Width int
		Lines []Line
	}{
		Title: title,
		Width: PrintWidthPx,
		Lines: doc.Lines(),
	})
}
