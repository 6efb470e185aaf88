package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"habitsense/internal/cli"
	"habitsense/internal/engine"
	"habitsense/internal/model"
	"habitsense/internal/tui"
)

func suggestCmd() *cobra.Command {
	var (
		explain    bool
		top        int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "suggest [habit name]",
		Short: "Suggest a category for a habit name",
		Long: `Suggest a category for a habit name.

With arguments, prints a single suggestion and exits. Without arguments on a
terminal, opens an interactive prompt that re-suggests as you type.`,
		RunE: func(_ *cobra.Command, args []string) error {
			service, err := newService()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if !isatty.IsTerminal(os.Stdin.Fd()) {
					return fmt.Errorf("habit name required when stdin is not a terminal")
				}
				return runInteractive(service)
			}

			name := strings.Join(args, " ")
			suggestion := service.Suggest(name)

			if jsonOutput {
				return printJSON(suggestion)
			}

			printSuggestion(service, suggestion, explain, top)
			return nil
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "show the signals behind the suggestion")
	cmd.Flags().IntVar(&top, "top", 1, "show the top N ranked categories")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the full result as JSON")

	return cmd
}

func runInteractive(service *engine.Service) error {
	suggestion, accepted, err := tui.RunPrompt(service)
	if err != nil {
		return err
	}
	if !accepted {
		return nil
	}
	fmt.Printf("%s\t%s\t%.2f\n", suggestion.Input, suggestion.Category, suggestion.Confidence)
	return nil
}

func printSuggestion(service *engine.Service, suggestion model.Suggestion, explain bool, top int) {
	fmt.Printf("%s %s %s\n",
		cli.BoldStyle.Render(suggestion.Input),
		cli.SubtleStyle.Render("→"),
		cli.FormatCategory(suggestion.Category))

	if suggestion.Fallback {
		fmt.Println(cli.SubtleStyle.Render("  no category cleared the confidence threshold"))
	} else {
		fmt.Printf("  confidence %s\n", cli.FormatConfidence(suggestion.Confidence))
	}

	if top > 1 {
		rankings := service.Rank(suggestion).TopN(top)
		if len(rankings) > 1 {
			fmt.Println()
			for _, ranking := range rankings {
				fmt.Printf("  %-12s %s %s\n",
					cli.FormatCategory(ranking.Category),
					cli.ConfidenceBar(ranking.Confidence, 20),
					cli.FormatConfidence(ranking.Confidence))
			}
		}
	}

	if explain && len(suggestion.Signals) > 0 {
		fmt.Println()
		fmt.Println(cli.SubtleStyle.Render("  signals:"))
		for _, signal := range suggestion.Signals {
			fmt.Printf("    %-8s %-20q %-12s %.2f\n",
				signal.Source, signal.Match, signal.Category, signal.Weight)
		}
	}
}

// jsonSuggestion is the machine-readable shape of a suggestion.
type jsonSuggestion struct {
	Input      string             `json:"input"`
	Tokens     []string           `json:"tokens"`
	Category   string             `json:"category"`
	Confidence float64            `json:"confidence"`
	Fallback   bool               `json:"fallback"`
	Scores     map[string]float64 `json:"scores"`
	Signals    []jsonSignal       `json:"signals,omitempty"`
}

type jsonSignal struct {
	Category string  `json:"category"`
	Source   string  `json:"source"`
	Match    string  `json:"match"`
	Weight   float64 `json:"weight"`
}

func printJSON(suggestion model.Suggestion) error {
	out := jsonSuggestion{
		Input:      suggestion.Input,
		Tokens:     suggestion.Tokens,
		Category:   suggestion.Category.String(),
		Confidence: suggestion.Confidence,
		Fallback:   suggestion.Fallback,
		Scores:     make(map[string]float64, len(suggestion.Scores)),
	}
	for category, score := range suggestion.Scores {
		out.Scores[category.String()] = score
	}
	for _, signal := range suggestion.Signals {
		out.Signals = append(out.Signals, jsonSignal{
			Category: signal.Category.String(),
			Source:   string(signal.Source),
			Match:    signal.Match,
			Weight:   signal.Weight,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
