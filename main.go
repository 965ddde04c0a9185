package main

import (
	"context"

	log "github.com/sirupsen/logrus"

	"cinetech/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		log.WithField("error", err).Fatal("failed to initialize application")
	}

	if err := application.Run(context.Background()); err != nil {
		log.WithField("error", err).Fatal("application terminated")
	}
}
