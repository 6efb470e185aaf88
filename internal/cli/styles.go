// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"habitsense/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7C9E6F")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or low-confidence results.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// categoryColors gives each category a stable color for terminal output.
var categoryColors = map[model.Category]lipgloss.Color{
	model.CategoryFitness:     lipgloss.Color("#10B981"),
	model.CategoryEducation:   lipgloss.Color("#3B82F6"),
	model.CategoryMindfulness: lipgloss.Color("#EC4899"),
	model.CategoryWork:        lipgloss.Color("#F59E0B"),
	model.CategoryHealth:      lipgloss.Color("#22C55E"),
	model.CategorySocial:      lipgloss.Color("#06B6D4"),
	model.CategoryFinance:     lipgloss.Color("#84CC16"),
	model.CategoryOther:       lipgloss.Color("#6B7280"),
}

// CategoryStyle returns a bold style in the category's color.
func CategoryStyle(c model.Category) lipgloss.Style {
	color, ok := categoryColors[c]
	if !ok {
		color = SubtleColor
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}

// FormatCategory renders a category name in its color.
func FormatCategory(c model.Category) string {
	return CategoryStyle(c).Render(c.String())
}

// FormatConfidence renders a confidence value, dimmed when it is low.
func FormatConfidence(confidence float64) string {
	text := fmt.Sprintf("%.0f%%", confidence*100)
	if confidence < 0.3 {
		return WarningStyle.Render(text)
	}
	return SuccessStyle.Render(text)
}

// ConfidenceBar renders a fixed-width bar visualizing a confidence value.
func ConfidenceBar(confidence float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(confidence*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return SubtleStyle.Render(bar)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render("✗ " + message)
}

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(title)
}
