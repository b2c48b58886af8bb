package generator

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Generated C++ is full of "{{", so templates use square delimiters.
var templates = template.Must(template.New("").
	Delims("[[", "]]").
	Funcs(template.FuncMap{
		"quote":  cppQuote,
		"raw":    rawString,
		"rawDoc": rawDocString,
		"join":   strings.Join,
	}).
	ParseFS(templateFS, "templates/*.tmpl"))

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("template %s: %w", name, err)
	}
	return buf.String(), nil
}

// cppQuote renders s as a C++ string literal.
func cppQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// rawString keeps s from terminating a R"(...)" literal early.
func rawString(s string) string {
	return strings.ReplaceAll(s, `)"`, `) "`)
}

func rawDocString(s string) string {
	return strings.ReplaceAll(s, `)ivw"`, `)ivw "`)
}
