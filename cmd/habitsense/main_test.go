package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"habitsense/internal/common"
)

func TestSetupLogging(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "console debug", level: "debug", format: "console"},
		{name: "json error", level: "error", format: "json"},
		{name: "invalid level", level: "loud", format: "console", wantErr: true},
		{name: "invalid format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(viper.Reset)
			viper.Set("logging.level", tt.level)
			viper.Set("logging.format", tt.format)

			err := setupLogging()
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEngineConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("defaults when unset", func(t *testing.T) {
		viper.Reset()
		assert.Equal(t, 0.15, engineConfig().FallbackThreshold)
		assert.Equal(t, 0.8, engineConfig().FuzzyThreshold)
	})

	t.Run("viper overrides", func(t *testing.T) {
		viper.Reset()
		viper.Set("engine.fallback_threshold", 0.3)
		viper.Set("engine.max_score", 3.0)

		config := engineConfig()
		assert.Equal(t, 0.3, config.FallbackThreshold)
		assert.Equal(t, 3.0, config.MaxScore)
		assert.Equal(t, 0.01, config.TieEpsilon, "unset keys keep their defaults")
	})
}
