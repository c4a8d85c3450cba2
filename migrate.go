package main

import (
	"path/filepath"

	"gamedex/internal/back"
	"gamedex/internal/config"

	"github.com/sirupsen/logrus"
)

func migrateUp(conf *config.Config, log *logrus.Logger) error {
	return back.Migrate(
		filepath.Join(conf.ResourcesDir, "migrations"),
		conf.SQLDriver,
		conf.SQLDSN,
		log,
	)
}
