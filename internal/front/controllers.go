package front

import (
	"context"

	"gamedex/internal/back"
)

// Scope is the presentation model of a view.
type Scope struct {
	Games []back.Game
	Game  *back.Game

	// Err is the rejection of the fetch, if any.
	Err error
}

// Status is the HTTP status matching the outcome of the fetch.
func (s *Scope) Status() int {
	return StatusCode(s.Err)
}

// A Controller binds fetched data to a Scope.
type Controller interface {
	Load(ctx context.Context, f Fetcher, params Params) *Scope
}

type GamesListController struct{}

func (GamesListController) Load(ctx context.Context, f Fetcher, _ Params) *Scope {
	scope := &Scope{}

	var games []back.Game
	if err := f.FetchList(ctx, "games", &games).Wait(ctx); err != nil {
		scope.Err = err
		return scope
	}

	scope.Games = games
	return scope
}

type GamesShowController struct{}

func (GamesShowController) Load(ctx context.Context, f Fetcher, params Params) *Scope {
	scope := &Scope{}

	var game back.Game
	if err := f.FetchOne(ctx, "games", params["id"], &game).Wait(ctx); err != nil {
		scope.Err = err
		return scope
	}

	scope.Game = &game
	return scope
}
