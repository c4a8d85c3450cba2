package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// logRequests logs the method, path, status and duration of each request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"remote":     r.RemoteAddr,
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("HTTP request")
	})
}

// acceptJSONFormatOnly refuses any explicit format but JSON.
func (s *Server) acceptJSONFormatOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch format := r.URL.Query().Get("format"); format {
		case "", "json":
			next.ServeHTTP(w, r)
		default:
			s.error(w, r, fmt.Errorf("unsupported format %q", format), http.StatusNotAcceptable)
		}
	})
}
