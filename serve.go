package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"gamedex/internal/back"
	"gamedex/internal/config"
	"gamedex/internal/web"

	"github.com/sirupsen/logrus"
)

func serve(conf *config.Config, log *logrus.Logger) error {
	if err := migrateUp(conf, log); err != nil {
		return err
	}

	store, err := back.Open(context.Background(), conf.SQLDriver, conf.SQLDSN, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("unable to close storage")
		}
	}()

	server, err := web.NewServer(store, conf.HTTPAddr, conf.ResourcesDir, conf.DefaultLocale, log)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	signaled := make(chan os.Signal, 1)
	signal.Notify(signaled, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	wg.Add(1)
	go server.Serve(&wg, done)

	sig := <-signaled
	log.Infof("received signal %s", sig)

	close(done)
	wg.Wait()

	log.Info("shutdown complete")

	return nil
}
