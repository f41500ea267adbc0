package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/daniilsolovey/blogicum/internal/db"
	"github.com/spf13/cobra"
)

var (
	// Location flags
	locationName   string
	locationHidden bool
)

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Manage post locations",
}

var locationAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a location",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(locationName)
		if name == "" {
			return fmt.Errorf("--name must not be empty")
		}

		repo, closeRepo, err := openRepo(cmd.Context())
		if err != nil {
			return err
		}
		defer closeRepo()

		location := &db.Location{
			Name:        name,
			IsPublished: !locationHidden,
		}
		if err := repo.CreateLocation(cmd.Context(), location); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "location %d created\n", location.ID)
		return nil
	},
}

var locationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := openRepo(cmd.Context())
		if err != nil {
			return err
		}
		defer closeRepo()

		locations, err := repo.Locations(cmd.Context(), false)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPUBLISHED")
		for _, l := range locations {
			fmt.Fprintf(w, "%d\t%s\t%t\n", l.ID, l.Name, l.IsPublished)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(locationCmd)
	locationCmd.AddCommand(locationAddCmd, locationListCmd)

	locationAddCmd.Flags().StringVar(&locationName, "name", "", "Location name")
	locationAddCmd.Flags().BoolVar(&locationHidden, "hidden", false, "Create the location unpublished")
	_ = locationAddCmd.MarkFlagRequired("name")
}
