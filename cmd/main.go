package main

import (
	"context"
	"log"

	"github.com/unimeet/unimeet-api/cmd/app"
	"github.com/unimeet/unimeet-api/internal/adapters/config"
)

func main() {
	cfg := config.Get()

	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	if err := a.Start(context.Background()); err != nil {
		log.Panic(err)
	}
}
