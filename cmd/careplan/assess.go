package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/careplanhq/careplan/internal/config"
	"github.com/careplanhq/careplan/internal/output"
	"github.com/careplanhq/careplan/internal/session"
)

var assessCmd = &cobra.Command{
	Use:   "assess [intake-file]",
	Short: "Compute care tier recommendations from an intake file",
	Long: `Assess evaluates the intake answers through the structural gates,
the deterministic scorer, and adjudication, producing a care plan per
person. No cost estimation is performed; use the cost command for that.`,
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

		ctx := cmd.Context()
		report := &output.Report{}
		report.Primary = runner.Engine.ComputeCarePlan(ctx, nilID,
			intake.Primary.Name, intake.Primary.PersonAnswers(), session.AdvisorFor(&intake.Primary))
		if intake.Partner != nil {
			report.Partner = runner.Engine.ComputeCarePlan(ctx, nilID,
				intake.Partner.Name, intake.Partner.PersonAnswers(), session.AdvisorFor(intake.Partner))
		}

		printReport(cmd, report)
	},
}

// printReport renders a report with the formatter named by --format.
func printReport(cmd *cobra.Command, report *output.Report) {
	format, _ := cmd.Flags().GetString("format")
	f := output.GetFormatterByName(format)
	if f == nil {
		log.Fatalf("Unknown output format: %s (valid: console, json, csv)", format)
	}
	data, err := f.Format(report)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(data))
}
