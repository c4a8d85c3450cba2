package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"gamedex/internal/front"
)

type indexTemplateData struct {
	Locale string
	Title  string
	Page   front.Page
	View   template.HTML
}

// index is the single HTML entry point, it acts as a catch all. The view
// matching the path is rendered server-side inside the layout.
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	locale := s.locales.Negotiate(r.Header.Get("Accept-Language"))
	page := s.router.Navigate(r.Context(), front.LocalFetcher{Repo: s.repo}, r.URL.Path)

	code := page.Scope.Status()
	if code >= http.StatusInternalServerError {
		s.log.WithError(page.Scope.Err).Error("unable to load view data")
		page.Scope.Err = errors.New(http.StatusText(code))
	}

	view, err := s.views.RenderHTML(locale, page)
	if err != nil {
		s.renderError(w, err)
		return
	}

	s.render(w, code, "index.html", indexTemplateData{
		Locale: locale,
		Title:  s.title(locale, page),
		Page:   page,
		View:   view,
	})
}

func (s *Server) title(locale string, page front.Page) string {
	games := s.locales.Get(locale).Get("Games")
	if page.Scope.Game != nil && page.Scope.Game.Name.Valid {
		return fmt.Sprintf("%s - %s", page.Scope.Game.Name.String, games)
	}

	return games
}

// render executes a layout in a buffer first so a template error does not
// end up in a half-written page.
func (s *Server) render(w http.ResponseWriter, code int, name string, data interface{}) {
	tpl, ok := s.templates[name]
	if !ok {
		s.renderError(w, fmt.Errorf("no layout %q", name))
		return
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.renderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.WithError(err).Error("unable to send response")
	}
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	s.log.WithError(err).Error("unable to render template")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
