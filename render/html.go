// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/ideaboard/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
	"plural": func(n int, singular, plural string) string {
		if n == 1 {
			return singular
		}
		return plural
	},
	"sorts": func() []string {
		return []string{models.SortNewest, models.SortPopular, models.SortTrending}
	},
}).ParseFS(templateFS, "templates/*.html"))

// WriteHTML renders the whole board page
func WriteHTML(w io.Writer, v View) error {
	return pageTemplate.ExecuteTemplate(w, "page.html", v)
}
