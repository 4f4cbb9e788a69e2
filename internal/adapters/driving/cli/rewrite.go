package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driving"
)

var noDiff bool

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [short-name...]",
	Short: "Fix the Web IDL of spec sources",
	Long: `Fetches the spec sources of the catalog, validates their Web IDL and
writes the automatically fixed sources to the output directory, together
with a patch, the validation messages and a report per spec.

If short names are given, only those specs are rewritten.`,
	RunE: runRewrite,
}

func init() {
	rewriteCmd.Flags().BoolVar(&noDiff, "no-diff", false, "do not write patches")
	rootCmd.AddCommand(rewriteCmd)
}

var (
	writtenColor = color.New(color.FgGreen, color.Bold)
	skippedColor = color.New(color.FgYellow)
	failedColor  = color.New(color.FgRed, color.Bold)
)

func runRewrite(cmd *cobra.Command, args []string) error {
	if rewriteService == nil {
		return errors.New("rewrite service not configured")
	}

	if len(args) > 0 {
		cmd.Printf("Rewriting %d specs...\n", len(args))
	} else {
		cmd.Println("Rewriting all specs...")
	}

	summary, err := rewriteService.Rewrite(context.Background(), driving.RewriteOptions{
		ShortNames: args,
		NoDiff:     noDiff,
	})
	if err != nil {
		return fmt.Errorf("rewrite failed: %w", err)
	}

	printRunSummary(cmd, summary)
	return nil
}

func printRunSummary(cmd *cobra.Command, summary *domain.RunSummary) {
	for _, d := range summary.Documents {
		line := fmt.Sprintf("  %-32s %s", d.ShortName, outcomeColor(d.Outcome).Sprint(d.Outcome))
		switch {
		case len(d.Unresolved) > 0:
			line += fmt.Sprintf(" (%d validations, %d unresolved)", d.Validations, len(d.Unresolved))
		case d.Validations > 0:
			line += fmt.Sprintf(" (%d validations)", d.Validations)
		}
		cmd.Println(line)
		for _, v := range d.Unresolved {
			cmd.Printf("      block %d: %s\n", v.Block, v.Rule)
		}
	}

	cmd.Println()
	cmd.Printf("Run %s: %d written, %d unchanged, %d skipped, %d failed\n",
		summary.RunID,
		summary.Count(domain.OutcomeWritten),
		summary.Count(domain.OutcomeUnchanged),
		summary.Count(domain.OutcomeRichMarkup),
		failures(summary))
}

func outcomeColor(o domain.Outcome) *color.Color {
	switch {
	case o == domain.OutcomeWritten:
		return writtenColor
	case o.IsFailure():
		return failedColor
	case o == domain.OutcomeRichMarkup:
		return skippedColor
	default:
		return color.New(color.Reset)
	}
}

func failures(summary *domain.RunSummary) int {
	n := 0
	for _, d := range summary.Documents {
		if d.Outcome.IsFailure() {
			n++
		}
	}
	return n
}
