package web

import (
	"errors"
	"fmt"
	"net/http"

	"gamedex/internal/back"
	"gamedex/internal/util"

	"github.com/go-chi/chi/v5"
)

func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.repo.ListGames(r.Context())
	if err != nil {
		s.error(w, r, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, games)
}

func (s *Server) showGame(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseUUIDAsBlob(chi.URLParam(r, "id"))
	if err != nil {
		s.error(w, r, fmt.Errorf("invalid game ID: %w", err), http.StatusBadRequest)
		return
	}

	game, err := s.repo.GetGameByID(r.Context(), id)
	if errors.Is(err, back.ErrNotFound) {
		s.error(w, r, back.ErrNotFound, http.StatusNotFound)
		return
	}

	if err != nil {
		s.error(w, r, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, game)
}
