package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"famchat/internal/config"
	"famchat/internal/database"
	"famchat/internal/modules/status"
	"famchat/internal/repository"
)

// One-off migration: stamps expires_at on legacy statuses created before the
// column existed. Safe to re-run; rows that already have an expiry are
// untouched.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	bf := status.NewBackfiller(repository.NewStatusRepository(db), cfg.SweepBatchSize)

	ctx := context.Background()
	total := 0
	for pass := 0; pass < 10000; pass++ {
		n, err := bf.Run(ctx)
		if err != nil {
			log.Fatalf("backfill failed after %d rows: %v", total, err)
		}
		if n == 0 {
			break
		}
		total += n
	}

	log.Printf("backfill completed: stamped=%d", total)
}
