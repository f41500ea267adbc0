package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/daniilsolovey/blogicum/internal/db"
	"github.com/gosimple/slug"
	"github.com/spf13/cobra"
)

// maxSlugLength matches categories.slug VARCHAR(64).
const maxSlugLength = 64

func init() {
	slug.MaxLength = maxSlugLength
}

var (
	// Category flags
	categoryTitle       string
	categoryDescription string
	categorySlugFlag    string
	categoryHidden      bool
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage post categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a category",
	Long: `Create a category. The slug is generated from the title when omitted.

Examples:
  blogctl category add --title "Путешествия" --description "Trips and hikes"
  blogctl category add --title Food --slug food --hidden`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := categorySlug(categoryTitle, categorySlugFlag)
		if err != nil {
			return err
		}

		repo, closeRepo, err := openRepo(cmd.Context())
		if err != nil {
			return err
		}
		defer closeRepo()

		category := &db.Category{
			Title:       strings.TrimSpace(categoryTitle),
			Description: categoryDescription,
			Slug:        s,
			IsPublished: !categoryHidden,
		}
		if err := repo.CreateCategory(cmd.Context(), category); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "category %d created: /category/%s/\n", category.ID, category.Slug)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := openRepo(cmd.Context())
		if err != nil {
			return err
		}
		defer closeRepo()

		categories, err := repo.Categories(cmd.Context(), false)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSLUG\tTITLE\tPUBLISHED")
		for _, c := range categories {
			fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", c.ID, c.Slug, c.Title, c.IsPublished)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryAddCmd, categoryListCmd)

	categoryAddCmd.Flags().StringVar(&categoryTitle, "title", "", "Category title")
	categoryAddCmd.Flags().StringVar(&categoryDescription, "description", "", "Category description")
	categoryAddCmd.Flags().StringVar(&categorySlugFlag, "slug", "", "URL slug (generated from the title by default)")
	categoryAddCmd.Flags().BoolVar(&categoryHidden, "hidden", false, "Create the category unpublished")
	_ = categoryAddCmd.MarkFlagRequired("title")
}

// categorySlug returns the explicit slug when valid, otherwise one made from the title.
func categorySlug(title, explicit string) (string, error) {
	if explicit != "" {
		if !slug.IsSlug(explicit) {
			return "", fmt.Errorf("invalid slug %q: use lowercase letters, digits and hyphens", explicit)
		}
		if len(explicit) > maxSlugLength {
			return "", fmt.Errorf("slug %q is longer than %d characters", explicit, maxSlugLength)
		}
		return explicit, nil
	}

	s := slug.Make(title)
	if s == "" {
		return "", fmt.Errorf("cannot make a slug from title %q, pass --slug", title)
	}
	return s, nil
}
