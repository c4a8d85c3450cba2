package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"gamedex/internal/back"
	"gamedex/internal/front"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	// Only the read side of the games resource exists.
	r.Route("/api", func(r chi.Router) {
		r.Use(s.acceptJSONFormatOnly)
		r.Get("/games", s.listGames)
		r.Get("/games/{id}", s.showGame)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			s.error(w, r, errors.New("not found"), http.StatusNotFound)
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			s.error(w, r, fmt.Errorf("%s is not allowed", r.Method), http.StatusMethodNotAllowed)
		})
	})

	fs := http.StripPrefix("/_/", http.FileServer(http.Dir(filepath.Join(s.baseDir, "static"))))
	r.Get("/_/*", func(w http.ResponseWriter, r *http.Request) {
		s.cache(w, "public", 1*time.Hour)
		fs.ServeHTTP(w, r)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.fallback, http.StatusFound)
	})
	r.Get("/*", s.index)

	return r
}

type Server struct {
	http *http.Server
	log  logrus.FieldLogger

	repo      back.GameRepository
	router    *front.Router
	fallback  string
	views     *front.Views
	locales   *front.Locales
	templates map[string]*template.Template
	baseDir   string
}

// NewServer creates a server for the games found in repo. baseDir is the
// resources directory, holding templates, locales and static files.
func NewServer(
	repo back.GameRepository,
	addr string,
	baseDir string,
	defaultLocale string,
	log logrus.FieldLogger,
) (*Server, error) {
	conf := front.DefaultConfig("/api")
	router, err := front.NewRouter(conf)
	if err != nil {
		return nil, err
	}

	locales, err := front.LoadLocales(baseDir, defaultLocale)
	if err != nil {
		return nil, err
	}

	views, err := front.LoadViews(baseDir, locales)
	if err != nil {
		return nil, err
	}

	s := &Server{
		log:      log.WithField("component", "web"),
		repo:     repo,
		router:   router,
		fallback: conf.Fallback,
		views:    views,
		locales:  locales,
		baseDir:  baseDir,
	}

	s.templates, err = s.loadTemplates(baseDir)
	if err != nil {
		return nil, err
	}

	s.http = &http.Server{
		Addr:         addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  10 * time.Second,
		Handler:      s.setupRouter(),
	}

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Serve runs the HTTP server until done is closed. The caller is expected to
// have called wg.Add(1).
func (s *Server) Serve(wg *sync.WaitGroup, done <-chan struct{}) {
	defer wg.Done()
	s.log.WithField("addr", s.http.Addr).Info("starting HTTP server")

	go func() {
		err := s.http.ListenAndServe()
		if err == http.ErrServerClosed {
			s.log.Info("HTTP server closed")
			return
		}

		s.log.WithError(err).Fatal("webserver crashed")
	}()

	<-done
	if err := s.http.Close(); err != nil {
		s.log.WithError(err).Warn("unable to close webserver")
	}
}

// response writes data as JSON.
func (s *Server) response(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	response, err := json.Marshal(data)
	if err != nil {
		s.log.WithError(err).Error("unable to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)

	if _, err := w.Write(response); err != nil {
		s.log.WithError(err).Error("unable to send response")
	}
}

type errorPayload struct {
	Error string `json:"error"`
}

// error writes a JSON error. Server errors are logged and their details are
// not sent to the client.
func (s *Server) error(w http.ResponseWriter, r *http.Request, err error, code int) {
	entry := s.log.WithFields(logrus.Fields{
		"request_id": middleware.GetReqID(r.Context()),
		"status":     code,
	})

	msg := http.StatusText(code)
	if code >= http.StatusInternalServerError {
		entry.WithError(err).Error("request failed")
	} else {
		entry.WithError(err).Debug("request rejected")
		if err != nil {
			msg = err.Error()
		}
	}

	s.response(w, code, errorPayload{Error: msg})
}

func (s *Server) cache(w http.ResponseWriter, scope string, d time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf("%s,max-age=%d", scope, d/time.Second))
}
