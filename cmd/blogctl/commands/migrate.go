package commands

import (
	"fmt"

	"github.com/daniilsolovey/blogicum/internal/db"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run the embedded database migrations.

Subcommands:
  up      - Apply pending migrations
  status  - Show migration status`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := databaseURL()
		if err != nil {
			return err
		}

		if err := db.RunMigrations(cmd.Context(), u); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := databaseURL()
		if err != nil {
			return err
		}

		return db.MigrationStatus(cmd.Context(), u)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)
}
