package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuahale/portfolio-backend/internal/infrastructure/config"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/database"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/migration"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply schema migrations and inspect the resulting tables.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Bring the database schema up to date with the registered models.`,
		RunE:  runUp,
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which tables exist",
		RunE:  runStatus,
	}
}

func initEnv() error {
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

	return nil
}

func runUp(cmd *cobra.Command, args []string) error {
	if err := initEnv(); err != nil {
		return err
	}
	defer database.Close()

	if err := migration.Run(database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("migrations applied")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := initEnv(); err != nil {
		return err
	}
	defer database.Close()

	migrator := database.Get().Migrator()
	for _, model := range migration.AutoMigrateModels() {
		fmt.Printf("%-24T exists=%v\n", model, migrator.HasTable(model))
	}
	return nil
}
