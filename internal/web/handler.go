// Package web sirve la página del formulario. Sin estado del lado servidor:
// lo único que lee es la cookie firmada con la última subida.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bodycomp-sync/internal/platform/logger"
	"bodycomp-sync/internal/session"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type indexData struct {
	HasLast bool
	Last    session.Memo
}

func RegisterRoutes(r chi.Router, sessions *session.Manager, log logger.Logger) {
	r.Get("/", indexHandler(sessions, log))
}

// indexHandler godoc
// @Summary  Formulario de carga de composición corporal
// @Produce  html
// @Success  200  {string}  string  "HTML"
// @Router   / [get]
func indexHandler(sessions *session.Manager, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := indexData{}
		if memo, ok := sessions.Last(r); ok {
			data.HasLast = true
			data.Last = memo
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTmpl.Execute(w, data); err != nil {
			log.Error("render index", map[string]any{"err": err.Error()})
		}
	}
}
