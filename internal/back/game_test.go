package back

import (
	"context"
	"errors"
	"os"
	"testing"

	"gamedex/internal/util"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestListGamesEmpty(t *testing.T) {
	back := createTestBack(t)

	games, err := back.ListGames(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if games == nil {
		t.Error("expected an empty slice, got nil")
	}
	if len(games) != 0 {
		t.Errorf("expected no games, got %d", len(games))
	}
}

func TestListGamesInsertionOrder(t *testing.T) {
	back := createTestBack(t)
	ctx := context.Background()

	names := []string{"Zelda", "Ocarina", "Majora", "Aonuma"}
	var created []Game
	for _, name := range names {
		game, err := back.CreateGame(ctx, name, "")
		if err != nil {
			t.Fatal(err)
		}
		created = append(created, game)
	}

	games, err := back.ListGames(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if len(games) != len(created) {
		t.Fatalf("expected %d games, got %d", len(created), len(games))
	}

	for k := range created {
		if games[k].ID != created[k].ID {
			t.Errorf("position %d: expected %s, got %s", k, created[k].ID, games[k].ID)
		}
		if games[k].Name.String != names[k] {
			t.Errorf("position %d: expected name %s, got %s", k, names[k], games[k].Name.String)
		}
		if games[k].Description.Valid {
			t.Errorf("position %d: expected NULL description", k)
		}
	}
}

func TestGetGameByID(t *testing.T) {
	back := createTestBack(t)
	ctx := context.Background()

	fixtures, err := LoadFixtures(ctx, back)
	if err != nil {
		t.Fatal(err)
	}

	game, err := back.GetGameByID(ctx, fixtures[1].ID)
	if err != nil {
		t.Fatal(err)
	}

	if game.ID != fixtures[1].ID {
		t.Errorf("expected %s, got %s", fixtures[1].ID, game.ID)
	}
	if game.Name.String != "Test2" || game.Description.String != "Test2" {
		t.Errorf("unexpected game %#v", game)
	}
	if !game.CreatedAt.Time().Equal(fixtures[1].CreatedAt.Time()) {
		t.Errorf("expected CreatedAt %s, got %s", fixtures[1].CreatedAt.Time(), game.CreatedAt.Time())
	}
	if !game.UpdatedAt.Time().Equal(game.CreatedAt.Time()) {
		t.Error("a fresh game should have UpdatedAt == CreatedAt")
	}
}

func TestGetGameByIDNotFound(t *testing.T) {
	back := createTestBack(t)

	if _, err := LoadFixtures(context.Background(), back); err != nil {
		t.Fatal(err)
	}

	_, err := back.GetGameByID(context.Background(), util.NewUUIDAsBlob())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMigrationURL(t *testing.T) {
	tests := []struct {
		driver, dsn, expected string
		fails                 bool
	}{
		{"sqlite3", "./gamedex.db", "sqlite3://./gamedex.db", false},
		{"postgres", "postgres://u:p@localhost/gamedex", "pgx5://u:p@localhost/gamedex", false},
		{"postgres", "postgresql://localhost/gamedex", "pgx5://localhost/gamedex", false},
		{"postgres", "host=localhost", "", true},
		{"mysql", "whatever", "", true},
	}

	for _, v := range tests {
		actual, err := migrationDatabaseURL(v.driver, v.dsn)
		if (err != nil) != v.fails {
			t.Errorf("%s %s: unexpected error %v", v.driver, v.dsn, err)
			continue
		}
		if actual != v.expected {
			t.Errorf("%s %s: expected %s, got %s", v.driver, v.dsn, v.expected, actual)
		}
	}
}

func createTestBack(t *testing.T) *Back {
	t.Helper()

	f, err := os.CreateTemp("", "*.db")
	if err != nil {
		t.Fatal(err)
	}
	path := f.Name()
	f.Close()
	t.Cleanup(func() {
		os.Remove(path)
	})

	log, _ := test.NewNullLogger()
	if err := Migrate("../../resources/migrations", "sqlite3", path, log); err != nil {
		t.Fatal(err)
	}

	back, err := New("sqlite3", path, log)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		back.Close()
	})

	return back
}
