package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samducker/bookgenre/internal/config"
)

func newClassifyCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <title>...",
		Short: "Classify one or more titles without touching a spreadsheet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}

			classifier, err := buildClassifier(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			for _, title := range args {
				result := classifier.Classify(cmd.Context(), title)
				fmt.Printf("%q: %s (confidence: %.2f, source: %s)\n",
					title, result.Genre, result.Confidence, result.Source)
			}
			return nil
		},
	}
}
