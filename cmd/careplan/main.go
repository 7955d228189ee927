package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/careplanhq/careplan/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// appConfig is populated once by the root PersistentPreRunE.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "careplan",
	Short: "Care tier adjudication and cost estimation CLI",
	Long:  "Assesses eldercare needs from intake answers, recommends a care tier, and estimates monthly costs",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := config.InitLogger(cfg.Log); err != nil {
			return err
		}
		appConfig = cfg
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [intake-file]",
	Short: "Validate an intake file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		intakeFile := args[0]

		parser := config.NewIntakeParser()
		if _, err := parser.LoadFromFile(intakeFile); err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Intake file %s is valid\n", intakeFile)
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "careplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func init() {
	assessCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	costCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides config)")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(costCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
