package main

import (
	"log"

	"github.com/jmarken/shiftpulse/internal/config"
	"github.com/jmarken/shiftpulse/internal/seed"
)

func main() {
	cfg := config.Load()

	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("Done. Try the vitals endpoint for user 11111111-1111-1111-1111-111111111111")
}
