package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"habitsense/internal/cli"
	"habitsense/internal/common"
	"habitsense/internal/engine"
	"habitsense/internal/registry"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "habitsense",
		Short: "Offline habit categorization engine",
		Long: `habitsense deterministically assigns a category to a habit name using
keyword, phrase, pattern, and fuzzy signals. No network, no training data:
the same input always produces the same suggestion.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/habitsense/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("registry", "", "path to a registry asset (default: embedded)")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("registry.path", rootCmd.PersistentFlags().Lookup("registry"))

	rootCmd.AddCommand(suggestCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/habitsense", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("HABITSENSE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	level := viper.GetString("logging.level")
	format := viper.GetString("logging.format")

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return fmt.Errorf("%w: invalid log level %q", common.ErrInvalidConfig, level)
	}

	switch format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format %q", common.ErrInvalidConfig, format)
	}

	return common.SetupLogger(slogLevel, format)
}

// engineConfig builds the scoring configuration from viper, falling back to
// the engine defaults per key.
func engineConfig() engine.Config {
	config := engine.DefaultConfig()
	if viper.IsSet("engine.max_score") {
		config.MaxScore = viper.GetFloat64("engine.max_score")
	}
	if viper.IsSet("engine.fallback_threshold") {
		config.FallbackThreshold = viper.GetFloat64("engine.fallback_threshold")
	}
	if viper.IsSet("engine.fuzzy_threshold") {
		config.FuzzyThreshold = viper.GetFloat64("engine.fuzzy_threshold")
	}
	if viper.IsSet("engine.tie_epsilon") {
		config.TieEpsilon = viper.GetFloat64("engine.tie_epsilon")
	}
	return config
}

// loadRegistry loads the rule set, preferring the configured asset path over
// the embedded default. Load failures are fatal: the engine refuses to serve
// suggestions against an inconsistent registry.
func loadRegistry() (*registry.Registry, error) {
	path := viper.GetString("registry.path")
	if path == "" {
		reg, err := registry.LoadDefault()
		if err != nil {
			common.LogError(err, "Embedded registry failed validation", nil)
			return nil, common.NewUserError("embedded registry is invalid", err)
		}
		return reg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("cannot open registry asset %s", path), err)
	}
	defer func() { _ = f.Close() }()

	reg, err := registry.Load(f)
	if err != nil {
		common.LogError(err, "Registry asset failed validation", common.Fields{"path": path})
		return nil, common.NewUserError(fmt.Sprintf("registry asset %s is invalid", path), err)
	}

	common.LogDebug("Loaded registry asset", common.Fields{"path": path, "version": reg.Version()})
	return reg, nil
}

// newService wires the registry and configuration into a suggestion service.
func newService() (*engine.Service, error) {
	reg, err := loadRegistry()
	if err != nil {
		return nil, err
	}
	return engine.NewWithConfig(reg, engineConfig()), nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("habitsense %s\n", version)
		},
	}
}
