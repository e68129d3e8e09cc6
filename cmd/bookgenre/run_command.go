package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samducker/bookgenre/internal/config"
)

func newRunCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Classify every untagged title in the configured spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			classifier, err := buildClassifier(ctx, cfg)
			if err != nil {
				return err
			}
			processor, err := buildProcessor(ctx, cfg, classifier)
			if err != nil {
				return err
			}

			summary, err := processor.Run(ctx, cfg.Sheets.ReadRange)
			if err != nil {
				return err
			}

			fmt.Printf("Run %s: %d titles, %d processed, %d updated, %d skipped, %d failed\n",
				summary.RunID, summary.Total, summary.Processed, summary.Updated, summary.Skipped, summary.Failed)
			return nil
		},
	}
}
