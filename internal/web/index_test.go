package web_test

import (
	"context"
	"net/http"
	"testing"

	"gamedex/internal/back"
	"gamedex/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRedirectsToGames(t *testing.T) {
	h := createTestServer(t, createTestBack(t))

	w := get(t, h, "/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/games", w.Header().Get("Location"))
}

func TestIndexRendersListView(t *testing.T) {
	b := createTestBack(t)
	games, err := back.LoadFixtures(context.Background(), b)
	require.NoError(t, err)
	h := createTestServer(t, b)

	w := get(t, h, "/games")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, `data-state="games.list"`)
	assert.Contains(t, body, "/games/"+games[0].ID.String())
	assert.Contains(t, body, "/games/"+games[1].ID.String())
	assert.Contains(t, body, `integrity="sha512-`)
}

func TestIndexRendersShowView(t *testing.T) {
	b := createTestBack(t)
	games, err := back.LoadFixtures(context.Background(), b)
	require.NoError(t, err)
	h := createTestServer(t, b)

	w := get(t, h, "/games/"+games[1].ID.String(), "Accept-Language", "fr-FR,fr;q=0.9")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<html lang="fr">`)
	assert.Contains(t, body, `data-state="games.show"`)
	assert.Contains(t, body, "<title>Test2 - Jeux</title>")
}

func TestIndexSurfacesErrors(t *testing.T) {
	h := createTestServer(t, createTestBack(t))

	w := get(t, h, "/games/"+util.NewUUIDAsBlob().String())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Unable to load this game.")

	w = get(t, h, "/games/42")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIndexCatchAll(t *testing.T) {
	h := createTestServer(t, createTestBack(t))

	for _, path := range []string{"/players", "/games/42/edit", "/some/deep/path"} {
		w := get(t, h, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), `data-state="games.list"`, path)
	}
}

func TestStaticAssets(t *testing.T) {
	h := createTestServer(t, createTestBack(t))

	w := get(t, h, "/_/app.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=3600")

	w = get(t, h, "/_/missing.css")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
