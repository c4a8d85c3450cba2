package front_test

import (
	"gamedex/internal/front"
	"testing"
)

func TestRouterResolve(t *testing.T) {
	r, err := front.NewRouter(front.DefaultConfig("http://localhost/api"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path       string
		state      string
		id         string
		redirected bool
	}{
		{"/games", "games.list", "", false},
		{"/games/", "games.list", "", false},
		{"/games?format=json", "games.list", "", false},
		{"/games/42", "games.show", "42", false},
		{"/games/42/", "games.show", "42", false},
		{"/games/.", "games.show", ".", false},
		{"/games/..#top", "games.show", "..", false},
		{"/games/2f1b5a7e-4a3c-4d34-9e0b-6c1f0e7f4a11", "games.show", "2f1b5a7e-4a3c-4d34-9e0b-6c1f0e7f4a11", false},
		{"/", "games.list", "", true},
		{"", "games.list", "", true},
		{"/players", "games.list", "", true},
		{"/games/42/edit", "games.list", "", true},
	}

	for _, v := range tests {
		m := r.Resolve(v.path)
		if m.State.Name != v.state {
			t.Errorf("%q: expected state %s, got %s", v.path, v.state, m.State.Name)
		}
		if m.Params["id"] != v.id {
			t.Errorf("%q: expected id %q, got %q", v.path, v.id, m.Params["id"])
		}
		if m.Redirected != v.redirected {
			t.Errorf("%q: expected redirected=%t", v.path, v.redirected)
		}
	}
}

func TestNewRouterRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		edit func(*front.Config)
	}{
		{"unknown fallback", func(c *front.Config) { c.Fallback = "/nowhere" }},
		{"orphan state", func(c *front.Config) {
			c.States = append(c.States, front.State{
				Name:       "players.list",
				URL:        "/players",
				View:       "players/index.html",
				Controller: front.GamesListController{},
			})
		}},
		{"duplicate state", func(c *front.Config) { c.States = append(c.States, c.States[1]) }},
		{"no controller", func(c *front.Config) { c.States[1].Controller = nil }},
		{"no name", func(c *front.Config) { c.States[0].Name = "" }},
		{"shared URL", func(c *front.Config) {
			c.States = append(c.States, front.State{
				Name:       "games.all",
				URL:        "",
				View:       "games/index.html",
				Controller: front.GamesListController{},
			})
		}},
		{"relative URL", func(c *front.Config) { c.States[0].URL = "games" }},
	}

	for _, v := range tests {
		c := front.DefaultConfig("http://localhost/api")
		v.edit(&c)
		if _, err := front.NewRouter(c); err == nil {
			t.Errorf("%s: expected an error", v.name)
		}
	}
}
