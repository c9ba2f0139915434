package web

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/shopspring/decimal"

	"ProductTrac/internal/productview"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTmpl = template.Must(
	template.New("page.html").
		Funcs(template.FuncMap{"price": formatPrice}).
		ParseFS(templateFS, "templates/page.html"),
)

// formatPrice prints a price the shortest exact way: 500, 9.99, never 5e+02.
func formatPrice(p float64) string {
	return decimal.NewFromFloat(p).String()
}

func renderPage(st productview.State) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, st); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
