package back

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gamedex/internal/util"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5:// URLs
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

// Migrate applies every pending migration found in migrationsDir/<driver>.
func Migrate(migrationsDir, sqlDriver, sqlDSN string, log logrus.FieldLogger) error {
	dbURL, err := migrationDatabaseURL(sqlDriver, sqlDSN)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(filepath.Join(migrationsDir, sqlDriver))
	if err != nil {
		return err
	}

	migrator, err := migrate.New("file://"+filepath.ToSlash(abs), dbURL)
	if err != nil {
		return fmt.Errorf("unable to create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		srcErr, dbErr := migrator.Close()
		return util.ConcatErrors([]error{
			fmt.Errorf("unable to migrate: %w", err), srcErr, dbErr,
		})
	}

	version, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.WithError(err).Warn("unable to read schema version")
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("database schema is up to date")

	srcErr, dbErr := migrator.Close()
	return util.ConcatErrors([]error{srcErr, dbErr})
}

func migrationDatabaseURL(sqlDriver, sqlDSN string) (string, error) {
	switch sqlDriver {
	case "sqlite3":
		return "sqlite3://" + sqlDSN, nil
	case "postgres":
		for _, prefix := range []string{"postgres://", "postgresql://"} {
			if strings.HasPrefix(sqlDSN, prefix) {
				return "pgx5://" + strings.TrimPrefix(sqlDSN, prefix), nil
			}
		}
		return "", fmt.Errorf("expected a postgres:// URL, got %q", sqlDSN)
	default:
		return "", fmt.Errorf("unknown SQL driver %q", sqlDriver)
	}
}
