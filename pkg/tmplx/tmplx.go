// Package tmplx is a thin wrapper over text/template used for the
// server-rendered storefront pages.
package tmplx

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"net/url"
	"text/template"

	"github.com/goccy/go-json"
)

var (
	ErrRenderTemplate = errors.New("tmplx: render error")
	ErrParseTemplate  = errors.New("tmplx: parse error")
)

type Template struct {
	tmpl *template.Template
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"default":        defaultFunc,
		"json":           jsonFunc,
		"escape":         html.EscapeString,
		"encodeUrlQuery": encodeURLQuery,
	}
}

func MustParse(name string, text string) *Template {
	t, err := Parse(name, text)
	if err != nil {
		panic(err)
	}
	return t
}

func Parse(name string, text string) (*Template, error) {
	tmpl, err := template.New(name).
		Option("missingkey=zero").
		Funcs(defaultFuncs()).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseTemplate, err)
	}
	return &Template{tmpl: tmpl}, nil
}

func (t *Template) Render(data any) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := t.tmpl.Execute(buf, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderTemplate, err)
	}
	return buf, nil
}

func defaultFunc(def any, value any) any {
	if value != nil && value != "" {
		return value
	}
	return def
}

func jsonFunc(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func encodeURLQuery(queries ...string) string {
	query := url.Values{}
	for i := 0; i < len(queries); i += 2 {
		value := ""
		if i+1 < len(queries) {
			value = queries[i+1]
		}
		query.Add(queries[i], value)
	}
	return query.Encode()
}
