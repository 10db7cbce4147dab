package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "fincert",
	Short:        "Quiz drill for financial certification exams",
	Long:         "fincert — terminal quiz drill for financial certification exams, with wrong notes and attempt history.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./fincert.yaml, then ~/.config/fincert/fincert.yaml)")
	pf.String("bank", "", "Question bank file, JSON or YAML (overrides bank_path)")
	pf.String("notes", "", "Wrong-note file (overrides wrong_notes_path)")
	pf.String("db", "", "Path to SQLite history database (overrides FINCERT_DB env var)")
	pf.Int64("seed", 0, "Seed for question order; 0 picks one from the clock")
	pf.Int("count", 0, "Number of questions in a random session")
	pf.String("log", "", "Log level: debug, info, warn or error")
	pf.String("logfile", "", "Write logs to this file")

	rootCmd.Flags().Bool("no-welcome", false, "Skip the welcome splash")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}
