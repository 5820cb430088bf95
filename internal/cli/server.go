package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"ai-learning-service/internal/app"
	"ai-learning-service/internal/config"
	"ai-learning-service/internal/infra/memory"
	pgstore "ai-learning-service/internal/infra/postgres"
	redisstore "ai-learning-service/internal/infra/redis"
	transport "ai-learning-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the learning service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "5000"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var levels app.LevelRepository
	var users app.UserRepository
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		levels = pgstore.NewLevelStore(pool)
		users = pgstore.NewUserStore(pool)
	} else {
		// No database configured; run off the built-in curriculum.
		levels = memory.NewLevelStore(defaultLevels())
		users = memory.NewUserStore()
	}

	if redisClient != nil {
		levelTTL := config.TTLDuration(cfg.Levels.TTL, 10*time.Minute)
		levels = redisstore.NewLevelCache(redisClient, levels, levelTTL)
	}

	secret := cfg.Auth.Secret
	if secret == "" {
		log.Printf("warning: no auth secret configured, using an ephemeral one")
		secret = time.Now().Format(time.RFC3339Nano)
	}
	tokenTTL := config.TTLDuration(cfg.Auth.TokenTTL, 7*24*time.Hour)

	board := app.NewStandingsBoard()
	authService := app.NewAuthService(users, secret, tokenTTL)
	progression := app.NewProgressionService(levels, users, board)

	api := transport.NewAPIHandler(authService, progression)
	wsHandler := transport.NewWSHandler(board)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	api.Register(mux)
	mux.HandleFunc("GET /ws/leaderboard", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting learning service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
