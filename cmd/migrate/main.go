package main

// Run database migrations:
//   go run ./cmd/migrate
// Roll back the most recent one:
//   go run ./cmd/migrate -down

import (
	"context"
	"flag"
	"os"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/telemetry"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration")
	flag.Parse()

	cfg := config.Load()
	telemetry.Configure(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if *down {
		if err := db.RollbackMigration(ctx, sqlDB); err != nil {
			telemetry.Error("migrate.down_failed", map[string]any{"error": err})
			os.Exit(1)
		}
		return
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.up_failed", map[string]any{"error": err})
		os.Exit(1)
	}
}
