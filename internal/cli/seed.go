package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"ai-learning-service/internal/config"
	pgstore "ai-learning-service/internal/infra/postgres"
)

// NewSeedCmd bulk-inserts the built-in curriculum. Levels that already
// exist by number are skipped, so reseeding is safe.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the default levels into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath)
		},
	}
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	levels := defaultLevels()
	if err := pgstore.NewLevelStore(pool).InsertMany(ctx, levels); err != nil {
		return err
	}
	log.Printf("seeded %d levels", len(levels))
	return nil
}
