package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"habitsense/internal/cli"
)

func batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>",
		Short: "Categorize a file of habit names",
		Long: `Categorize newline-delimited habit names from a file, or from stdin when
the file is "-". Results are written to stdout as tab-separated
name, category, and confidence; progress goes to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			service, err := newService()
			if err != nil {
				return err
			}

			input := os.Stdin
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer func() { _ = f.Close() }()
				input = f
			}

			names, err := readNames(input)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println(cli.InfoStyle.Render("No habit names to categorize."))
				return nil
			}

			bar := progressbar.NewOptions(len(names),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("categorizing"),
				progressbar.OptionClearOnFinish(),
			)

			out := bufio.NewWriter(os.Stdout)
			defer func() { _ = out.Flush() }()

			fallbacks := 0
			for _, name := range names {
				suggestion := service.Suggest(name)
				if suggestion.Fallback {
					fallbacks++
				}
				fmt.Fprintf(out, "%s\t%s\t%.2f\n", name, suggestion.Category, suggestion.Confidence)
				_ = bar.Add(1)
			}

			slog.Info("Batch categorization complete",
				"total", len(names),
				"fallbacks", fallbacks)
			return nil
		},
	}
}

func readNames(f *os.File) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read habit names: %w", err)
	}
	return names, nil
}
