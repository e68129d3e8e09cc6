package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/samducker/bookgenre/internal/config"
	"github.com/samducker/bookgenre/internal/genre"
	"github.com/samducker/bookgenre/internal/server"
)

func newServeCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the classifier over HTTP",
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

			// A spreadsheet is optional in serve mode; without one only
			// /classify and /health are available.
			var processor *genre.Processor
			if cfg.Sheets.SpreadsheetID != "" {
				processor, err = buildProcessor(ctx, cfg, classifier)
				if err != nil {
					return err
				}
			} else {
				log.Println("No SPREADSHEET_ID configured, /runs disabled")
			}

			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}

			srv := server.NewServer(classifier, processor, cfg.Sheets.ReadRange)
			r := srv.SetupRouter()

			log.Printf("Starting server on port %s", port)
			return r.Run(":" + port)
		},
	}
}
