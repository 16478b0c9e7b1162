package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maycoin-backend/config"
	"maycoin-backend/handlers"
	"maycoin-backend/middleware"
	"maycoin-backend/services"
	"maycoin-backend/utils"
	"maycoin-backend/workers"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config

	rootCmd := &cobra.Command{
		Use:   "maycoin",
		Short: "Backend for the MayCoin clicker game",
		Long: `maycoin serves player progress (/player) and the moderation surface (/admin)
over a PostgreSQL player store. Running it without a subcommand starts the server.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until SIGINT/SIGTERM",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the players and blocked_players tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openGormStore(cfg)
			if err != nil {
				return err
			}
			if err := store.Migrate(); err != nil {
				return err
			}
			log.Println("✅ Migrations applied")
			return nil
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "backup",
		Short: "Upload one player snapshot to the backup bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openGormStore(cfg)
			if err != nil {
				return err
			}
			worker, err := newBackupWorker(cmd.Context(), store, cfg.Backup)
			if err != nil {
				return err
			}
			_, err = worker.Snapshot(cmd.Context())
			return err
		},
	})

	return rootCmd
}

func openGormStore(cfg config.Config) (*services.GormPlayerStore, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable not set")
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return services.NewGormPlayerStore(db), nil
}

func newBackupWorker(ctx context.Context, store services.PlayerStore, cfg config.BackupConfig) (*workers.BackupWorker, error) {
	uploader, err := utils.NewR2Uploader(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return workers.NewBackupWorker(services.NewAdminService(store), uploader, cfg), nil
}

func runServe(parent context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store services.PlayerStore
	gormStore, err := openGormStore(cfg)
	switch {
	case cfg.DatabaseURL == "":
		log.Println("⚠️  Serving without a database, store requests will return 500")
		store = services.NewUnavailableStore()
	case err != nil:
		return err
	default:
		if err := gormStore.Migrate(); err != nil {
			return err
		}
		store = gormStore
	}

	app := handlers.NewApp(handlers.AppDeps{
		PlayerService: services.NewPlayerService(store),
		AdminService:  services.NewAdminService(store),
		AdminPassword: cfg.AdminPassword,
		Metrics:       middleware.NewMetrics(),
	})

	if cfg.Backup.Enabled() {
		worker, err := newBackupWorker(ctx, store, cfg.Backup)
		if err != nil {
			log.Printf("⚠️ [BACKUP] disabled: %v", err)
		} else if err := worker.Start(ctx); err != nil {
			log.Printf("⚠️ [BACKUP] disabled: %v", err)
		} else {
			defer func() { _ = worker.Stop() }()
		}
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
			stop()
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)

	<-ctx.Done()
	log.Println("Shutting down server...")
	return app.ShutdownWithTimeout(10 * time.Second)
}
