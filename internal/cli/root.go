// Package cli implements the toko command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var (
	// Global flags
	envFiles []string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "toko",
	Short: "Toko - multi-tenant product catalog",
	Long: `Toko serves a product catalog over a JSON API: products and categories,
stock-derived status, search and filtering, dashboard statistics and PDF reports.

Configuration is read from the environment and optional .env files.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "Dotenv files to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL")
}

// runtime is the configuration and logger shared by every command.
type runtime struct {
	cfg *config.Config
	log *logger.Logger
}

func loadRuntime() (*runtime, error) {
	config.LoadDotEnv(envFiles...)
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logLevel != "" {
		cfg.App.LogLevel = logLevel
	}
	log := logger.New(logger.Options{
		ServiceName: "toko",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})
	return &runtime{cfg: cfg, log: log}, nil
}

// openDB connects and migrates; the returned func closes the connection.
func (r *runtime) openDB() (*gorm.DB, func(), error) {
	db, err := database.Open(r.cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := database.Migrate(db); err != nil {
		closeDB()
		return nil, nil, err
	}
	return db, closeDB, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
