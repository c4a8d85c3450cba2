package main

import (
	"context"

	"gamedex/internal/back"
	"gamedex/internal/config"

	"github.com/sirupsen/logrus"
)

func loadFixtures(conf *config.Config, log *logrus.Logger) error {
	ctx := context.Background()
	store, err := back.Open(ctx, conf.SQLDriver, conf.SQLDSN, log)
	if err != nil {
		return err
	}
	defer store.Close()

	games, err := back.LoadFixtures(ctx, store)
	if err != nil {
		return err
	}

	for _, v := range games {
		log.WithFields(logrus.Fields{
			"id":   v.ID.String(),
			"name": v.Name.String,
		}).Info("created game")
	}

	return nil
}
