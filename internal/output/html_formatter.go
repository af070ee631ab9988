package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLFormatter produces a standalone HTML report from the markdown rendering.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
}).Parse(htmlTemplateSource))

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func (h HTMLFormatter) Format(t *domain.ProjectionTable) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(t)
	if err != nil {
		return nil, err
	}
	var body bytes.Buffer
	if err := markdown.Convert(md, &body); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	data := struct {
		*domain.ProjectionTable
		Body template.HTML
	}{t, template.HTML(body.String())}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
