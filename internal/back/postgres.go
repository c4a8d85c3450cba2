package back

import (
	"context"
	"errors"
	"fmt"

	"gamedex/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// PGRepository stores games in PostgreSQL through a pgx pool.
type PGRepository struct {
	pool *pgxpool.Pool
	log  logrus.FieldLogger
	psql squirrel.StatementBuilderType
}

// NewPGRepository connects to dsn and pings the server before returning.
func NewPGRepository(ctx context.Context, dsn string, log logrus.FieldLogger) (*PGRepository, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse pgx config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return &PGRepository{
		pool: pool,
		log:  log.WithField("component", "pg"),
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

func (r *PGRepository) Close() error {
	r.pool.Close()
	return nil
}

var pgGameColumns = []string{`"ID"`, `"CreatedAt"`, `"UpdatedAt"`, `"Name"`, `"Description"`}

func (r *PGRepository) CreateGame(ctx context.Context, name, description string) (Game, error) {
	game := NewGame(name, description)

	query, args, err := r.psql.Insert(`"Game"`).
		Columns(pgGameColumns...).
		Values(game.ID, game.CreatedAt, game.UpdatedAt, game.Name, game.Description).
		ToSql()
	if err != nil {
		return Game{}, err
	}

	err = pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		return Game{}, fmt.Errorf("unable to insert game: %w", err)
	}

	r.log.WithField("id", game.ID.String()).Debug("created game")

	return game, nil
}

func (r *PGRepository) ListGames(ctx context.Context) ([]Game, error) {
	query, args, err := r.psql.Select(pgGameColumns...).
		From(`"Game"`).
		OrderBy(`"Seq" ASC`).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unable to list games: %w", err)
	}
	defer rows.Close()

	ret := []Game{}
	for rows.Next() {
		var g Game
		if err := scanGame(rows, &g); err != nil {
			return nil, err
		}
		ret = append(ret, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to list games: %w", err)
	}

	return ret, nil
}

func (r *PGRepository) GetGameByID(ctx context.Context, id util.UUIDAsBlob) (Game, error) {
	query, args, err := r.psql.Select(pgGameColumns...).
		From(`"Game"`).
		Where(`"ID" = ?`, id).
		Limit(1).
		ToSql()
	if err != nil {
		return Game{}, err
	}

	var ret Game
	if err := scanGame(r.pool.QueryRow(ctx, query, args...), &ret); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Game{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		return Game{}, fmt.Errorf("unable to get game %s: %w", id, err)
	}

	return ret, nil
}

func scanGame(row pgx.Row, g *Game) error {
	return row.Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt, &g.Name, &g.Description)
}
