package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"habitsense/internal/cli"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories in the loaded registry",
		Long:  `Display every category with its tie-break priority and rule counts.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Registry v%d", reg.Version())))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Priority"),
				cli.BoldStyle.Render("Keywords"),
				cli.BoldStyle.Render("Phrases"),
				cli.BoldStyle.Render("Patterns"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 12),
				strings.Repeat("-", 8),
				strings.Repeat("-", 8),
				strings.Repeat("-", 7),
				strings.Repeat("-", 8))

			for _, def := range reg.Definitions() {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
					cli.FormatCategory(def.Category),
					def.Priority,
					len(def.Keywords),
					len(def.Phrases),
					len(def.Patterns))
			}

			return nil
		},
	}
}
