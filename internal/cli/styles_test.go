package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"habitsense/internal/model"
)

func TestFormatCategory(t *testing.T) {
	for _, category := range model.AllCategories() {
		assert.Contains(t, FormatCategory(category), category.String())
	}
	assert.Contains(t, FormatCategory("Unknown"), "Unknown", "unknown categories still render their name")
}

func TestFormatConfidence(t *testing.T) {
	assert.Contains(t, FormatConfidence(0.85), "85%")
	assert.Contains(t, FormatConfidence(0.0), "0%")
	assert.Contains(t, FormatConfidence(1.0), "100%")
}

func TestFormatError(t *testing.T) {
	out := FormatError("registry asset is invalid")

	assert.Contains(t, out, "registry asset is invalid")
	assert.Contains(t, out, "✗")
}

func TestConfidenceBar(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		width      int
		wantFull   int
	}{
		{name: "empty", confidence: 0.0, width: 10, wantFull: 0},
		{name: "half", confidence: 0.5, width: 10, wantFull: 5},
		{name: "full", confidence: 1.0, width: 10, wantFull: 10},
		{name: "overfull clamps", confidence: 1.4, width: 10, wantFull: 10},
		{name: "zero width", confidence: 0.5, width: 0, wantFull: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ConfidenceBar(tt.confidence, tt.width)
			if tt.width == 0 {
				assert.Empty(t, bar)
				return
			}

			full := 0
			for _, r := range bar {
				if r == '█' {
					full++
				}
			}
			assert.Equal(t, tt.wantFull, full)
		})
	}
}
