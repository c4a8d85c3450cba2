package front

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Params holds the values of the {named} URL segments.
type Params map[string]string

// Router resolves paths to states.
type Router struct {
	mux       *chi.Mux
	byPattern map[string]*State
	fallback  string
}

// A Match is a resolved path.
type Match struct {
	State  *State
	Params Params
	Path   string

	// Redirected is set when the requested path was unknown and the
	// fallback was used instead.
	Redirected bool
}

// NewRouter validates the state tree of c.
func NewRouter(c Config) (*Router, error) {
	byName := make(map[string]*State, len(c.States))
	for k := range c.States {
		s := &c.States[k]
		if s.Name == "" {
			return nil, fmt.Errorf("state #%d has no name", k)
		}
		if _, ok := byName[s.Name]; ok {
			return nil, fmt.Errorf("duplicate state %s", s.Name)
		}
		byName[s.Name] = s
	}

	r := &Router{
		mux:       chi.NewRouter(),
		byPattern: map[string]*State{},
		fallback:  c.Fallback,
	}
	for k := range c.States {
		s := &c.States[k]
		full, err := fullURL(byName, s)
		if err != nil {
			return nil, err
		}

		if s.Abstract {
			continue
		}
		if s.Controller == nil || s.View == "" {
			return nil, fmt.Errorf("state %s needs a controller and a view", s.Name)
		}
		if !strings.HasPrefix(full, "/") {
			return nil, fmt.Errorf("state %s URL %q must start with /", s.Name, full)
		}
		if other, ok := r.byPattern[full]; ok {
			return nil, fmt.Errorf("states %s and %s share the URL %s", other.Name, s.Name, full)
		}

		r.byPattern[full] = s
		// The handler is never called, the mux is only used to match.
		r.mux.Get(full, func(http.ResponseWriter, *http.Request) {})
	}

	if _, ok := r.resolve(c.Fallback); !ok {
		return nil, fmt.Errorf("fallback %q does not resolve to a state", c.Fallback)
	}

	return r, nil
}

func fullURL(byName map[string]*State, s *State) (string, error) {
	url := s.URL
	name := s.Name
	for {
		idx := strings.LastIndexByte(name, '.')
		if idx < 0 {
			return url, nil
		}

		name = name[:idx]
		parent, ok := byName[name]
		if !ok {
			return "", fmt.Errorf("state %s has no parent %s", s.Name, name)
		}
		url = parent.URL + url
	}
}

// cleanPath drops the query, the fragment and any trailing slash.
func cleanPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	return "/" + strings.Trim(p, "/")
}

// Resolve returns the state matching path, or the fallback state.
func (r *Router) Resolve(path string) Match {
	if m, ok := r.resolve(path); ok {
		return m
	}

	m, _ := r.resolve(r.fallback)
	m.Redirected = true

	return m
}

func (r *Router) resolve(path string) (Match, bool) {
	path = cleanPath(path)

	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, http.MethodGet, path) {
		return Match{}, false
	}

	state, ok := r.byPattern[rctx.RoutePattern()]
	if !ok {
		return Match{}, false
	}

	params := make(Params, len(rctx.URLParams.Keys))
	for k, key := range rctx.URLParams.Keys {
		params[key] = rctx.URLParams.Values[k]
	}

	return Match{
		State:  state,
		Params: params,
		Path:   path,
	}, true
}

// A Page is a resolved path and its bound data, ready to be rendered.
type Page struct {
	Match
	Scope *Scope
}

// Navigate resolves path and runs the matching controller.
func (r *Router) Navigate(ctx context.Context, f Fetcher, path string) Page {
	m := r.Resolve(path)
	return Page{
		Match: m,
		Scope: m.State.Controller.Load(ctx, f, m.Params),
	}
}
