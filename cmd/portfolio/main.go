package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuahale/portfolio-backend/internal/interfaces/cli/migrate"
	"github.com/joshuahale/portfolio-backend/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Portfolio backend service",
		Long:  `Backend for a personal portfolio site: cookie-session authentication, blog posts, and a contact form.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
