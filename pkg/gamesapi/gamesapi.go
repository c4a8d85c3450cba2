// Package gamesapi is a REST resource client for the gamedex HTTP API.
package gamesapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// API holds the necessary state to communicate with a gamedex server.
type API struct {
	http          *http.Client
	baseURL       *url.URL
	defaultParams url.Values
	limiter       *rate.Limiter
	log           logrus.FieldLogger
}

// Option tweaks an API at creation.
type Option func(*API)

// WithHTTPClient replaces the default 10s-timeout client.
func WithHTTPClient(c *http.Client) Option {
	return func(api *API) {
		api.http = c
	}
}

// WithDefaultParams replaces the query parameters sent with every request.
func WithDefaultParams(q url.Values) Option {
	return func(api *API) {
		api.defaultParams = q
	}
}

// WithRateLimit paces requests, every request waits for the limiter.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(api *API) {
		api.limiter = rate.NewLimiter(r, burst)
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(log logrus.FieldLogger) Option {
	return func(api *API) {
		api.log = log
	}
}

// New creates a client for the API rooted at baseURL, eg. "http://localhost:3001/api".
// By default every request carries format=json.
func New(baseURL string, opts ...Option) (*API, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute, got %q", baseURL)
	}

	discard := logrus.New()
	discard.Out = io.Discard

	api := &API{
		baseURL:       u,
		defaultParams: url.Values{"format": {"json"}},
		limiter:       rate.NewLimiter(rate.Inf, 1),
		log:           discard,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(api)
	}

	return api, nil
}

// StatusError is returned when the server answered with a non-2xx status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("got status code %d", e.Code)
	}

	return fmt.Sprintf("got status code %d: %s", e.Code, e.Message)
}

// IsNotFound returns true if err is a 404 StatusError.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound
}

// Collection is a named resource collection, eg. "games".
type Collection struct {
	api  *API
	name string
}

// All returns the collection named resource.
func (api *API) All(resource string) Collection {
	return Collection{api: api, name: resource}
}

// GetList fetches the whole collection and decodes it in out, which must be
// a pointer to a slice.
func (c Collection) GetList(ctx context.Context, out interface{}) error {
	c.api.log.Debugf("fetching collection %s", c.name)
	return c.api.get(ctx, out, c.name)
}

// GetListAsync runs GetList in the background.
func (c Collection) GetListAsync(ctx context.Context, out interface{}) *Pending {
	return Go(func() error {
		return c.GetList(ctx, out)
	})
}

// Element is a single entity of a collection.
type Element struct {
	api      *API
	resource string
	id       string
}

// One returns the element id of the collection named resource.
func (api *API) One(resource string, id string) Element {
	return Element{api: api, resource: resource, id: id}
}

// Get fetches the element and decodes it in out.
func (e Element) Get(ctx context.Context, out interface{}) error {
	e.api.log.Debugf("fetching %s %s", e.resource, e.id)
	return e.api.get(ctx, out, e.resource, e.id)
}

// GetAsync runs Get in the background.
func (e Element) GetAsync(ctx context.Context, out interface{}) *Pending {
	return Go(func() error {
		return e.Get(ctx, out)
	})
}

// getURL appends segments to the base URL as is, "." and ".." included, so
// the server is the one judging them.
func (api *API) getURL(segments ...string) string {
	q := url.Values{}
	for k, v := range api.defaultParams {
		q[k] = append([]string(nil), v...)
	}

	u := *api.baseURL
	rawPath := strings.TrimSuffix(u.EscapedPath(), "/")
	for _, v := range segments {
		rawPath += "/" + url.PathEscape(v)
	}

	u.Path, _ = url.PathUnescape(rawPath)
	u.RawPath = rawPath
	u.RawQuery = q.Encode()

	return u.String()
}

func (api *API) get(ctx context.Context, out interface{}, segments ...string) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, api.getURL(segments...), nil)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Request-Id", uuid.New().String())

	return api.do(request, out)
}

// do performs a rate-limited request on the API and writes the JSON-decoded
// response body in response.
// If response is nil the body is discarded.
func (api *API) do(request *http.Request, response interface{}) error {
	start := time.Now()
	if err := api.limiter.Wait(request.Context()); err != nil {
		return err
	}
	if waited := time.Since(start); waited > time.Millisecond {
		api.log.Debugf("waited %s before calling API", waited)
	}

	res, err := api.http.Do(request)
	if err != nil {
		return fmt.Errorf("unable to perform HTTP request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return newStatusError(res)
	}

	if response == nil {
		_, err := io.Copy(io.Discard, res.Body)
		return err
	}

	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(response); err != nil {
		return fmt.Errorf("unable to parse response: %w", err)
	}

	return nil
}

func newStatusError(res *http.Response) *StatusError {
	ret := &StatusError{Code: res.StatusCode}

	body, err := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err != nil {
		return ret
	}

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		ret.Message = payload.Error
	} else {
		ret.Message = strings.TrimSpace(string(body))
	}

	return ret
}
