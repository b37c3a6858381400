package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docsieve/docsieve/internal/extractor"
	"github.com/docsieve/docsieve/internal/llm"
	"github.com/docsieve/docsieve/internal/logger"
	"github.com/docsieve/docsieve/internal/output"
	"github.com/docsieve/docsieve/internal/pipeline"
	"github.com/docsieve/docsieve/internal/retry"
	"github.com/docsieve/docsieve/internal/store"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured fields from document text",
	Long: `Extract reads raw document text from a file or stdin and produces a
structured record of the fixed fields.

With an API key the text is sent to the remote extraction service; without
one, or when the service is unavailable, a deterministic offline parser
runs instead. The result is printed and persisted as the latest snapshot.`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()

	flags.StringP("file", "f", "", "input text file (default: stdin)")

	// Remote service settings
	flags.StringP("provider", "p", "", "extraction provider: gemini, openai, anthropic (auto-detects from env vars)")
	flags.StringP("model", "m", "", "model name (provider-specific)")
	flags.StringP("api-key", "k", "", "API key (or use env var)")
	flags.String("base-url", "", "custom API base URL")
	flags.Duration("timeout", 2*time.Minute, "overall extraction timeout")
	flags.Int("max-attempts", 3, "max remote attempts before falling back")

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, jsonl, yaml")

	// Persistence settings
	flags.String("state-dir", "", "directory for the persisted snapshot")
	flags.Bool("no-persist", false, "skip persisting the result")

	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("base_url", flags.Lookup("base-url"))
	_ = viper.BindPFlag("state_dir", flags.Lookup("state-dir"))
}

func runExtract(cmd *cobra.Command, args []string) error {
	rawText, err := readInput(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	formatName, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatName)
	if err != nil {
		logError("%v", err)
		return err
	}

	providerName := viper.GetString("provider")
	apiKey := viper.GetString("api_key")
	if providerName == "" {
		if detected, key := llm.DetectProvider(); detected != "" {
			providerName = detected
			if apiKey == "" {
				apiKey = key
			}
		} else {
			providerName = "gemini"
		}
	}

	model := viper.GetString("model")
	if model == "" {
		model = llm.GetDefaultModel(providerName)
	}

	provider, err := llm.NewProvider(providerName, llm.ProviderConfig{
		APIKey:  apiKey,
		BaseURL: viper.GetString("base_url"),
		Model:   model,
		Timeout: 60 * time.Second,
	})
	if err != nil {
		logError("%v", err)
		return err
	}

	maxAttempts, _ := cmd.Flags().GetInt("max-attempts")
	policy := retry.DefaultPolicy()
	if maxAttempts > 0 {
		policy.MaxAttempts = maxAttempts
	}

	remote := extractor.NewRemote(provider, apiKey, extractor.WithRetryPolicy(policy))

	opts := []pipeline.Option{}
	if noPersist, _ := cmd.Flags().GetBool("no-persist"); !noPersist {
		st, err := store.NewFile(defaultStateDir())
		if err != nil {
			logger.Warn("persistence disabled", "error", err)
		} else {
			opts = append(opts, pipeline.WithStore(st))
		}
	}

	p := pipeline.New(remote, extractor.NewLocal(), opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	p.LoadLatest(ctx)

	logger.Info("extracting",
		"provider", providerName,
		"model", model,
		"input_bytes", len(rawText))

	artifact, status, err := p.Process(ctx, rawText)
	if err != nil {
		logError("extraction aborted: %v", err)
		return err
	}

	printStatus(status)

	return writeArtifact(cmd, format, artifact)
}

// readInput loads the raw text from the --file flag or stdin.
func readInput(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

// printStatus renders the outcome line on stderr so the artifact stays
// clean on stdout.
func printStatus(status pipeline.Status) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", status.Tone, status.Message)
}

// writeArtifact serializes the artifact to the chosen destination.
func writeArtifact(cmd *cobra.Command, format output.Format, data any) error {
	dest := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			logError("failed to create output file: %v", err)
			return err
		}
		defer f.Close()
		dest = f
	}

	w, err := output.NewWriter(format, dest)
	if err != nil {
		logError("%v", err)
		return err
	}
	if err := w.Write(data); err != nil {
		logError("failed to write output: %v", err)
		return err
	}
	return w.Close()
}
