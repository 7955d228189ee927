package main

import (
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/careplanhq/careplan/internal/config"
	"github.com/careplanhq/careplan/internal/session"
)

// nilID asks the engine to mint person ids.
var nilID = uuid.Nil

var costCmd = &cobra.Command{
	Use:   "cost [intake-file]",
	Short: "Compute care plans and monthly cost estimates",
	Long: `Cost runs the full pipeline: a care plan per person, a monthly
cost estimate for the requested scenario, and the household aggregate
with an even two-way split.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		intake, err := config.NewIntakeParser().LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		runner, err := session.FromConfig(appConfig)
		if err != nil {
			log.Fatal(err)
		}

		report, err := runner.Run(cmd.Context(), intake)
		if err != nil {
			log.Fatal(err)
		}

		printReport(cmd, report)
	},
}
