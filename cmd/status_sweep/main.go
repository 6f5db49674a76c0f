package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"famchat/internal/config"
	"famchat/internal/database"
	"famchat/internal/modules/status"
	"famchat/internal/pkg/media"
	"famchat/internal/repository"
)

// Invoked from cron every 5 minutes. Each run deletes at most one batch of
// expired statuses; a backlog drains over successive runs.
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

	cleaner := media.NewCDNCleaner(cfg.MediaAPIBaseURL, cfg.MediaCloudName, cfg.MediaAPIKey, cfg.MediaAPISecret)
	sweeper := status.NewSweeper(repository.NewStatusRepository(db), cleaner, cfg.SweepBatchSize)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := sweeper.Run(ctx)
	if err != nil {
		log.Fatalf("status sweep failed: %v", err)
	}

	log.Printf("status sweep completed: deleted=%d batch_size=%d", n, cfg.SweepBatchSize)
}
