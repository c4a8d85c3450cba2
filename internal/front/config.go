package front

import (
	"net/url"
)

// Config is the client application configuration, built once at startup and
// given to NewRouter and NewRemoteFetcher.
type Config struct {
	// BaseURL is the API root, eg. "http://127.0.0.1:3001/api".
	BaseURL string

	// DefaultParams are added to every API request.
	DefaultParams url.Values

	// Fallback is where unknown paths are sent.
	Fallback string

	States []State
}

// A State is a node of the route tree. Its full URL is its parent URL
// followed by its own, the parent being the name up to the last dot. URLs are
// chi patterns, eg. "/{id}".
type State struct {
	Name     string
	URL      string
	Abstract bool

	// View is the template rendered for this state, relative to the views
	// directory.
	View       string
	Controller Controller
}

// DefaultConfig returns the two games views.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:       baseURL,
		DefaultParams: url.Values{"format": {"json"}},
		Fallback:      "/games",
		States: []State{
			{
				Name:     "games",
				URL:      "/games",
				Abstract: true,
			},
			{
				Name:       "games.list",
				URL:        "",
				View:       "games/index.html",
				Controller: GamesListController{},
			},
			{
				Name:       "games.show",
				URL:        "/{id}",
				View:       "games/show.html",
				Controller: GamesShowController{},
			},
		},
	}
}
