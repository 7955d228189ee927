package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/careplanhq/careplan/internal/server"
	"github.com/careplanhq/careplan/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the care plan JSON API",
	Long: `Serve exposes the assessment pipeline over HTTP:

  POST /v1/care-plan   one person's answers, returns the care plan
  POST /v1/cost-plan   intake document, returns care plan plus cost plan
  POST /v1/household   intake document, returns the full household report`,
	Run: func(cmd *cobra.Command, args []string) {
		runner, err := session.FromConfig(appConfig)
		if err != nil {
			log.Fatal(err)
		}

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = appConfig.Server.Port
		}

		if err := server.New(runner, port).ListenAndServe(); err != nil {
			log.Fatal(err)
		}
	},
}
