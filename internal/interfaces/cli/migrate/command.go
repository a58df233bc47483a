// Package migrate implements the goose migration commands.
package migrate

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/boostline-inc/boostline/internal/infrastructure/config"
	"github.com/boostline-inc/boostline/internal/infrastructure/database"
	"github.com/boostline-inc/boostline/internal/infrastructure/persistence/migrations"
	"github.com/boostline-inc/boostline/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE:  func(cmd *cobra.Command, args []string) error { return runGoose(goose.Up) },
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE:  func(cmd *cobra.Command, args []string) error { return runGoose(goose.Down) },
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show migration status",
			RunE:  func(cmd *cobra.Command, args []string) error { return runGoose(goose.Status) },
		},
	)

	return cmd
}

func runGoose(fn func(db *sql.DB, dir string, opts ...goose.OptionsFunc) error) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	sqlDB, err := database.Get().DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(gooseDialect(cfg.Database.Driver)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return fn(sqlDB, ".")
}

func gooseDialect(driver string) string {
	if driver == "sqlite" {
		return "sqlite3"
	}
	return "mysql"
}
