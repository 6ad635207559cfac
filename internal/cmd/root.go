// Package cmd provides the command-line interface for apprank.
// It handles command parsing, configuration loading, and wiring the
// scrape and load pipelines.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/yschen25/apprank/internal/config"
	"github.com/yschen25/apprank/internal/logging"
)

var (
	cfgFile   string
	version   string
	buildTime string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "apprank",
	Short: "App Store ranking tracker",
	Long: `apprank tracks category rankings for a fixed set of App Store
listing pages.

The scrape pipeline fetches each page, extracts name/ranking/version,
prints a summary table, and writes a timestamped JSON snapshot. The
load pipeline imports a snapshot into a local SQLite database and
prints the top-ranked apps and recent errors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		showConfig, _ := cmd.Flags().GetBool("show-config")
		if showConfig {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return showCurrentConfig(cfg)
		}
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information for the CLI
func SetVersionInfo(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./apprank.yml)")
	rootCmd.Flags().Bool("show-config", false, "Display current configuration in YAML format and exit")

	rootCmd.PersistentFlags().StringP("database", "d", "database/app_store.db", "Path to SQLite database file")
	rootCmd.PersistentFlags().String("snapshot-dir", "app_store_ranking", "Directory for snapshot JSON files")
	rootCmd.PersistentFlags().String("log-dir", "log", "Directory for daily log files")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")

	bindFlags := []struct {
		viperKey string
		flagName string
	}{
		{"database_path", "database"},
		{"snapshot_dir", "snapshot-dir"},
		{"log_dir", "log-dir"},
		{"log_level", "log-level"},
	}

	for _, bind := range bindFlags {
		if err := viper.BindPFlag(bind.viperKey, rootCmd.PersistentFlags().Lookup(bind.flagName)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind flag %s: %v\n", bind.flagName, err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("apprank")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APPRANK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults overridden by
// config file, environment, and flags.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupLogging initializes the default slog logger from the config.
func setupLogging(cfg *config.Config) error {
	return logging.SetDefault(logging.Config{
		Level:   logging.ParseLevel(cfg.LogLevel),
		Dir:     cfg.LogDir,
		Prefix:  "apprank",
		Console: true,
	})
}

func showCurrentConfig(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to YAML: %w", err)
	}

	fmt.Printf("# Current apprank configuration\n")
	fmt.Printf("# Generated at: %s\n", time.Now().Format(time.RFC3339))
	fmt.Printf("# Configuration file search paths: ./apprank.yml\n")
	fmt.Printf("# Environment variables prefix: APPRANK_\n\n")

	fmt.Print(string(yamlData))
	return nil
}
