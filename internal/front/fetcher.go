package front

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gamedex/internal/back"
	"gamedex/internal/util"
	"gamedex/pkg/gamesapi"
)

// Fetcher retrieves resources in the background. The returned Pending
// settles once out has been filled or the fetch failed.
type Fetcher interface {
	FetchList(ctx context.Context, resource string, out interface{}) *gamesapi.Pending
	FetchOne(ctx context.Context, resource string, id string, out interface{}) *gamesapi.Pending
}

var (
	// ErrBadID is returned when an ID is not a valid identifier.
	ErrBadID = errors.New("invalid identifier")

	// ErrUnknownResource is returned for anything but "games".
	ErrUnknownResource = errors.New("unknown resource")
)

// StatusCode maps a fetch error to the HTTP status it stands for.
func StatusCode(err error) int {
	var statusErr *gamesapi.StatusError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &statusErr):
		return statusErr.Code
	case errors.Is(err, back.ErrNotFound), errors.Is(err, ErrUnknownResource):
		return http.StatusNotFound
	case errors.Is(err, ErrBadID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RemoteFetcher fetches over HTTP.
type RemoteFetcher struct {
	API *gamesapi.API
}

// NewRemoteFetcher creates the API client described by c.
func NewRemoteFetcher(c Config, opts ...gamesapi.Option) (*RemoteFetcher, error) {
	opts = append([]gamesapi.Option{gamesapi.WithDefaultParams(c.DefaultParams)}, opts...)
	api, err := gamesapi.New(c.BaseURL, opts...)
	if err != nil {
		return nil, err
	}

	return &RemoteFetcher{API: api}, nil
}

func (f *RemoteFetcher) FetchList(ctx context.Context, resource string, out interface{}) *gamesapi.Pending {
	return f.API.All(resource).GetListAsync(ctx, out)
}

func (f *RemoteFetcher) FetchOne(ctx context.Context, resource string, id string, out interface{}) *gamesapi.Pending {
	return f.API.One(resource, id).GetAsync(ctx, out)
}

// LocalFetcher reads straight from a repository, it is used to render views
// server-side without a round-trip through the API.
type LocalFetcher struct {
	Repo back.GameRepository
}

func (f LocalFetcher) FetchList(ctx context.Context, resource string, out interface{}) *gamesapi.Pending {
	return gamesapi.Go(func() error {
		if resource != "games" {
			return fmt.Errorf("%w: %s", ErrUnknownResource, resource)
		}
		dst, ok := out.(*[]back.Game)
		if !ok {
			return fmt.Errorf("expected *[]back.Game, got %T", out)
		}

		games, err := f.Repo.ListGames(ctx)
		if err != nil {
			return err
		}

		*dst = games
		return nil
	})
}

func (f LocalFetcher) FetchOne(ctx context.Context, resource string, id string, out interface{}) *gamesapi.Pending {
	return gamesapi.Go(func() error {
		if resource != "games" {
			return fmt.Errorf("%w: %s", ErrUnknownResource, resource)
		}
		dst, ok := out.(*back.Game)
		if !ok {
			return fmt.Errorf("expected *back.Game, got %T", out)
		}

		gameID, err := util.ParseUUIDAsBlob(id)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrBadID, err)
		}

		game, err := f.Repo.GetGameByID(ctx, gameID)
		if err != nil {
			return err
		}

		*dst = game
		return nil
	})
}
