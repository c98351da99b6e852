package main

import (
	"log"

	"github.com/aussiebroadwan/profiles/internal/profiles/app"
)

func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("profiles: failed to initialize service: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("profiles: service stopped with error: %v", err)
	}
}
