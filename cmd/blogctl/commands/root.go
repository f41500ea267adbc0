package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/daniilsolovey/blogicum/config"
	"github.com/daniilsolovey/blogicum/internal/db"
	"github.com/go-pg/pg/v10"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	dbURL      string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Blogicum management tool",
	Long: `blogctl manages the Blogicum database: migrations, categories and locations.

The database is taken from --db, then DATABASE_URL, then the config file.`,
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
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL")
}

// databaseURL resolves the connection URL from the flags, the environment or the config.
func databaseURL() (string, error) {
	if dbURL != "" {
		return dbURL, nil
	}
	if env := os.Getenv("DATABASE_URL"); env != "" {
		return env, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return "", err
	}
	return cfg.DatabaseURL(), nil
}

// openRepo connects to the database. The returned func closes the connection.
func openRepo(ctx context.Context) (*db.Repository, func(), error) {
	u, err := databaseURL()
	if err != nil {
		return nil, nil, err
	}

	opt, err := pg.ParseURL(u)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	dbc := pg.Connect(opt)
	if err := dbc.Ping(ctx); err != nil {
		dbc.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := db.New(dbc)
	return repo, func() { _ = repo.Close() }, nil
}
