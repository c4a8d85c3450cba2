package back

import (
	"context"
	"fmt"
	"io"

	"gamedex/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Back is the SQL storage adapter for games, it talks to any database/sql
// driver supported by sqlx. The only one registered is sqlite3.
type Back struct {
	db  *sqlx.DB
	log logrus.FieldLogger
}

func New(sqlDriver string, sqlDSN string, log logrus.FieldLogger) (*Back, error) {
	// Why even bother converting names? A single greppable string across all
	// your source code is better than any odd conversion scheme you could ever
	// come up with.
	// HACK: This is global but putting this in init() makes test ugly.
	// As only the Back relies on the DB, this seems like an okay-ish place.
	sqlx.NameMapper = func(v string) string { return v }

	db, err := sqlx.Connect(sqlDriver, sqlDSN)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to %s: %w", sqlDriver, err)
	}

	if sqlDriver == "sqlite3" {
		// SQLite does not like concurrent writers.
		db.SetMaxOpenConns(1)
	}

	return &Back{
		db:  db,
		log: log.WithField("component", "back"),
	}, nil
}

func (b *Back) Close() error {
	return b.db.Close()
}

func (b *Back) transaction(ctx context.Context, cb util.TransactionCallback) error {
	return util.Transaction(ctx, b.db, cb)
}

// Store is a GameRepository that can also insert games, it is the only
// write path to the storage.
type Store interface {
	GameRepository
	io.Closer
	CreateGame(ctx context.Context, name, description string) (Game, error)
}

var (
	_ Store = (*Back)(nil)
	_ Store = (*PGRepository)(nil)
)

// Open returns the storage adapter for the given driver.
func Open(ctx context.Context, sqlDriver, sqlDSN string, log logrus.FieldLogger) (Store, error) {
	switch sqlDriver {
	case "postgres":
		return NewPGRepository(ctx, sqlDSN, log)
	default:
		return New(sqlDriver, sqlDSN, log)
	}
}

// LoadFixtures inserts the sample games used during development.
func LoadFixtures(ctx context.Context, s Store) ([]Game, error) {
	fixtures := []struct{ name, description string }{
		{"Test", "Test"},
		{"Test2", "Test2"},
	}

	games := make([]Game, 0, len(fixtures))
	for _, v := range fixtures {
		game, err := s.CreateGame(ctx, v.name, v.description)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	return games, nil
}
