package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Propose rewritten specs upstream",
	Long: `Reads the reports of the last rewrite run and, for each spec hosted on
GitHub, opens or refreshes a pull request with the fixed source, or files
an issue for a Web IDL syntax error. Issues are closed once the syntax
error is gone.

Requires a GitHub token (github.token in the config file, or GH_TOKEN).`,
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	if submitService == nil {
		return errors.New("submit service not configured")
	}

	summary, err := submitService.Submit(context.Background())
	if summary != nil {
		for _, url := range summary.PullRequests {
			cmd.Printf("Pull request: %s\n", url)
		}
		for _, name := range summary.IssuesOpened {
			cmd.Printf("Opened syntax error issue for %s\n", name)
		}
		for _, name := range summary.IssuesClosed {
			cmd.Printf("Closed syntax error issue for %s\n", name)
		}
		for _, name := range summary.Skipped {
			cmd.Printf("Skipped %s\n", name)
		}
	}
	if err != nil {
		return fmt.Errorf("submit failed: %w", err)
	}
	return nil
}
