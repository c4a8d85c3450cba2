package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gamedex/internal/config"
	"gamedex/internal/front"
	"gamedex/pkg/gamesapi"

	"github.com/sirupsen/logrus"
)

const browseTimeout = 30 * time.Second

// browse runs the client side of the application in the terminal: the path
// is resolved by the router and its view rendered from the remote API.
func browse(conf *config.Config, log logrus.FieldLogger, path string, w io.Writer) error {
	if path == "" {
		path = "/games"
	}

	c := front.DefaultConfig(conf.APIBaseURL)
	router, err := front.NewRouter(c)
	if err != nil {
		return err
	}

	fetcher, err := front.NewRemoteFetcher(c,
		gamesapi.WithHTTPClient(&http.Client{Timeout: browseTimeout}),
		gamesapi.WithLogger(log),
		gamesapi.WithRateLimit(5, 1),
	)
	if err != nil {
		return err
	}

	locales, err := front.LoadLocales(conf.ResourcesDir, conf.DefaultLocale)
	if err != nil {
		return err
	}

	views, err := front.LoadViews(conf.ResourcesDir, locales)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), browseTimeout)
	defer cancel()

	page := router.Navigate(ctx, fetcher, path)
	if page.Redirected {
		log.Debugf("unknown path %s, showing %s", path, page.Path)
	}

	locale := locales.Negotiate(localeFromEnv())
	if err := views.Render(w, locale, page); err != nil {
		return err
	}

	if page.Scope.Err != nil {
		return fmt.Errorf("%s: %w", page.Path, page.Scope.Err)
	}

	return nil
}

// localeFromEnv turns LANG (eg. "fr_FR.UTF-8") into a language tag.
func localeFromEnv() string {
	lang := strings.SplitN(os.Getenv("LANG"), ".", 2)[0]
	return strings.ReplaceAll(lang, "_", "-")
}
