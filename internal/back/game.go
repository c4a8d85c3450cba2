package back

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gamedex/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// ErrNotFound is returned when no Game matches the requested ID.
var ErrNotFound = errors.New("game not found")

// GameRepository is the read side of the Game storage.
type GameRepository interface {
	// ListGames returns all games in insertion order.
	ListGames(ctx context.Context) ([]Game, error)
	// GetGameByID returns ErrNotFound if there is no such game.
	GetGameByID(ctx context.Context, id util.UUIDAsBlob) (Game, error)
}

// A Game is the only resource of the application. Name and Description are
// free text and may be NULL.
type Game struct {
	ID          util.UUIDAsBlob      `json:"id"`
	CreatedAt   util.TimeAsTimestamp `json:"created_at"`
	UpdatedAt   util.TimeAsTimestamp `json:"updated_at"`
	Name        null.String          `json:"name"`
	Description null.String          `json:"description"`
}

func NewGame(name string, description string) Game {
	now := util.NewTimeAsTimestamp(time.Now())

	return Game{
		ID:          util.NewUUIDAsBlob(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Name:        util.NullString(name),
		Description: util.NullString(description),
	}
}

func (g *Game) setMap() squirrel.Eq {
	return squirrel.Eq{
		"ID":          g.ID,
		"CreatedAt":   g.CreatedAt,
		"UpdatedAt":   g.UpdatedAt,
		"Name":        g.Name,
		"Description": g.Description,
	}
}

func (g *Game) insert(ctx context.Context, tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Game").SetMap(g.setMap()).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

var gameColumns = []string{"ID", "CreatedAt", "UpdatedAt", "Name", "Description"}

// CreateGame inserts a new Game, there is no other way to create one.
func (b *Back) CreateGame(ctx context.Context, name, description string) (Game, error) {
	game := NewGame(name, description)
	if err := b.transaction(ctx, func(tx *sqlx.Tx) error {
		return game.insert(ctx, tx)
	}); err != nil {
		return Game{}, fmt.Errorf("unable to insert game: %w", err)
	}

	b.log.WithField("id", game.ID.String()).Debug("created game")

	return game, nil
}

func (b *Back) ListGames(ctx context.Context) ([]Game, error) {
	query, args, err := squirrel.Select(gameColumns...).
		From("Game").
		OrderBy("rowid ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	ret := []Game{}
	if err := b.db.SelectContext(ctx, &ret, query, args...); err != nil {
		return nil, fmt.Errorf("unable to list games: %w", err)
	}

	return ret, nil
}

func (b *Back) GetGameByID(ctx context.Context, id util.UUIDAsBlob) (Game, error) {
	query, args, err := squirrel.Select(gameColumns...).
		From("Game").
		Where("ID = ?", id).
		Limit(1).
		ToSql()
	if err != nil {
		return Game{}, err
	}

	var ret Game
	if err := b.db.GetContext(ctx, &ret, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Game{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		return Game{}, fmt.Errorf("unable to get game %s: %w", id, err)
	}

	return ret, nil
}
