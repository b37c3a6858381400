package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/docsieve/docsieve/internal/output"
	"github.com/docsieve/docsieve/internal/pipeline"
	"github.com/docsieve/docsieve/internal/store"
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the last persisted extraction snapshot",
	RunE:  runLatest,
}

func init() {
	rootCmd.AddCommand(latestCmd)

	flags := latestCmd.Flags()
	flags.String("format", "json", "output format: json, jsonl, yaml")
	flags.String("state-dir", "", "directory for the persisted snapshot")
}

func runLatest(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatName)
	if err != nil {
		logError("%v", err)
		return err
	}

	dir, _ := cmd.Flags().GetString("state-dir")
	if dir == "" {
		dir = defaultStateDir()
	}

	st, err := store.NewFile(dir)
	if err != nil {
		logError("%v", err)
		return err
	}

	snapshot, ok := pipeline.LoadSnapshot(context.Background(), st)
	if !ok {
		err := errors.New("no persisted snapshot found")
		logError("%v", err)
		return err
	}

	return writeArtifact(cmd, format, snapshot)
}
