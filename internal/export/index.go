package export

import (
	"html/template"
	"strings"
)

// Card is one photo entry of the static index page.
type Card struct {
	Title       string
	Description string
	Small       string
	SmallWidth  int
	Large       string
	LargeWidth  int
}

// HasImage reports whether the card has any image to show.
func (c Card) HasImage() bool {
	return c.Small != ""
}

// WidthHint reports whether the card should carry a srcset/sizes hint. A
// photo with a single available variant gets a plain img tag.
func (c Card) WidthHint() bool {
	return c.Small != "" && c.Large != "" && c.Small != c.Large
}

type indexData struct {
	Title       string
	Description string
	Cards       []Card
}

// The viewer is fully self-contained: inline styles, no scripts, renderable
// from the image files alone.
var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="ru">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <title>{{.Title}}</title>
  <style>
    body{margin:0;font-family:system-ui,-apple-system,Segoe UI,Roboto,Arial,sans-serif;background:#111;color:#eee}
    .wrap{max-width:1100px;margin:0 auto;padding:16px}
    h1{font-size:20px;margin:0 0 12px}
    .desc{font-size:14px;opacity:.8;margin:0 0 12px}
    .grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(220px,1fr));gap:10px}
    .card{background:#1a1a1a;border:1px solid #333;border-radius:12px;padding:8px;margin:0}
    img{width:100%;height:auto;display:block;border-radius:8px}
    figcaption{font-size:12px;opacity:.7;margin:4px 0 6px}
  </style>
</head>
<body>
  <div class="wrap">
    <h1>{{.Title}}</h1>
{{- if .Description}}
    <p class="desc">{{.Description}}</p>
{{- end}}
    <div class="grid">
{{- range .Cards}}
      <figure class="card">
{{- if .Description}}
        <figcaption><strong>{{.Title}}</strong><br/>{{.Description}}</figcaption>
{{- else}}
        <figcaption>{{.Title}}</figcaption>
{{- end}}
{{- if .WidthHint}}
        <img src="{{.Small}}" srcset="{{.Small}} {{.SmallWidth}}w, {{.Large}} {{.LargeWidth}}w" sizes="(max-width:640px) 320px, 100vw" alt="{{.Title}}" />
{{- else if .HasImage}}
        <img src="{{.Small}}" alt="{{.Title}}" />
{{- end}}
      </figure>
{{- end}}
    </div>
  </div>
</body>
</html>
`))

func renderIndex(title, description string, cards []Card) (string, error) {
	var b strings.Builder
	err := indexTemplate.Execute(&b, indexData{Title: title, Description: description, Cards: cards})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
