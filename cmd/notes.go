package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fincert/internal/wrongnote"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage wrong notes",
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions in the wrong notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := openNotes(cmd)
		if err != nil {
			return err
		}
		qs, err := notes.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-8s  %-14s  %s\n", "ID", "Category", "Question")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, q := range qs {
			text := []rune(strings.Join(strings.Fields(q.Text), " "))
			if len(text) > 50 {
				text = append(text[:47], []rune("...")...)
			}
			fmt.Fprintf(out, "%-8s  %-14s  %s\n", q.ID, q.CategoryOrDefault(), string(text))
		}
		fmt.Fprintf(out, "\n%d wrong notes\n", len(qs))
		return nil
	},
}

var notesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every wrong note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := openNotes(cmd)
		if err != nil {
			return err
		}
		n := notes.Len()
		if err := notes.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %d wrong notes\n", n)
		return nil
	},
}

func openNotes(cmd *cobra.Command) (*wrongnote.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return wrongnote.New(cfg.WrongNotesPath, zap.NewNop()), nil
}

func init() {
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesClearCmd)
}
