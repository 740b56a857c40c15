package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"cv-builder/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageStyle holds the print geometry shared by the HTML and the PDF converter.
type PageStyle struct {
	MarginInches float64
	BodyPt       int
	NamePt       int
	SectionPt    int
	SecondaryPt  int
	// A4 paper size in inches.
	PaperWidth  float64
	PaperHeight float64
}

// DefaultPage is the only page style in use.
var DefaultPage = PageStyle{
	MarginInches: 0.5,
	BodyPt:       11,
	NamePt:       18,
	SectionPt:    14,
	SecondaryPt:  10,
	PaperWidth:   8.27,
	PaperHeight:  11.69,
}

var (
	tplOnce sync.Once
	tpl     *template.Template
	tplErr  error
)

func printTemplate() (*template.Template, error) {
	tplOnce.Do(func() {
		funcMap := template.FuncMap{"join": strings.Join}
		tpl, tplErr = template.New("modern.html").Funcs(funcMap).ParseFS(templateFS, "templates/modern.html")
	})
	return tpl, tplErr
}

// Printable renders d as a self-contained HTML page ready for PDF conversion.
// An empty document prints the header only.
func Printable(d model.Document) (string, error) {
	t, err := printTemplate()
	if err != nil {
		return "", fmt.Errorf("parse print template: %w", err)
	}
	var buf bytes.Buffer
	data := map[string]interface{}{
		"Layout": Build(d),
		"Page":   DefaultPage,
	}
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute print template: %w", err)
	}
	return buf.String(), nil
}
