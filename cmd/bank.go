package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/fincert/internal/bank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect and repair the question bank",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a question bank for problems",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := bankPath(cmd, args)
		if err != nil {
			return err
		}
		b, err := bank.Load(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		issues := b.Issues()
		for _, is := range issues {
			fmt.Fprintln(out, is.String())
		}
		fmt.Fprintf(out, "%s: %d questions in %d categories, %d issues\n",
			path, b.Len(), len(b.Categories()), len(issues))
		if len(issues) > 0 {
			return fmt.Errorf("%d issues found in %s", len(issues), path)
		}
		return nil
	},
}

var bankRepairCmd = &cobra.Command{
	Use:   "repair [file]",
	Short: "Fix fenced or concatenated JSON banks in place",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := bankPath(cmd, args)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		fixed, n, err := bank.Repair(content)
		if err != nil {
			return err
		}

		if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
			_, err := cmd.OutOrStdout().Write(fixed)
			return err
		}
		if err := os.WriteFile(path, fixed, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "repaired %s: %d records\n", path, n)
		return nil
	},
}

var bankCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with question counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := bankPath(cmd, nil)
		if err != nil {
			return err
		}
		b, err := bank.Load(path)
		if err != nil {
			return err
		}

		counts := b.Count()
		names := make([]string, 0, len(counts))
		for c := range counts {
			names = append(names, c)
		}
		sort.Strings(names)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-24s  %5s\n", "Category", "Count")
		fmt.Fprintln(out, strings.Repeat("─", 31))
		for _, c := range names {
			fmt.Fprintf(out, "%-24s  %5d\n", c, counts[c])
		}
		fmt.Fprintf(out, "\n%d questions\n", b.Len())
		return nil
	},
}

// bankPath returns the positional file argument, or the configured bank.
func bankPath(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	return cfg.BankPath, nil
}

func init() {
	bankRepairCmd.Flags().Bool("dry-run", false, "Print the repaired bank instead of rewriting the file")

	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankRepairCmd)
	bankCmd.AddCommand(bankCategoriesCmd)
}
