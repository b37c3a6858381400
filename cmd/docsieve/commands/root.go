// Package commands implements the CLI commands for docsieve.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docsieve/docsieve/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "docsieve",
	Short: "Structured field extraction from scanned document text",
	Long: `Docsieve converts raw document text (OCR output) into a structured
record of fixed fields: applicant name, document id and issue date.

Extraction uses a remote structured-extraction service when an API key is
available, and a deterministic offline parser otherwise or when the remote
service fails. The latest result is persisted between runs.

Examples:
  # Extract from a text file using the remote service
  GEMINI_API_KEY=... docsieve extract -f passport.txt

  # Extract from stdin, offline only
  cat passport.txt | docsieve extract

  # Use a specific provider and model
  docsieve extract -f passport.txt -p openai -m gpt-4o-mini

  # Show the last persisted result
  docsieve latest`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
			JSON:  viper.GetBool("log_json"),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.docsieve.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "emit logs as JSON")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".docsieve")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("DOCSIEVE")
	viper.AutomaticEnv()

	// Also check common API key env vars
	_ = viper.BindEnv("api_key", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// defaultStateDir returns the directory holding the persisted snapshot.
func defaultStateDir() string {
	if dir := viper.GetString("state_dir"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return ".docsieve-state"
	}
	return filepath.Join(base, "docsieve")
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
