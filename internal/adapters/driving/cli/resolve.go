package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve URL...",
	Short: "Find the source files of published specs",
	Long: `Guesses the repository source file of each published spec URL and
prints catalog entries for the specs that could be resolved.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if sourceResolver == nil {
		return errors.New("source resolver not configured")
	}

	ctx := context.Background()
	entries := make(map[string]*domain.SpecSource, len(args))
	for _, url := range args {
		source, err := sourceResolver.Resolve(ctx, url)
		if errors.Is(err, domain.ErrNotFound) {
			cmd.PrintErrf("No source found for %s\n", url)
			continue
		}
		if err != nil {
			return fmt.Errorf("resolve %s: %w", url, err)
		}
		entries[url] = source
	}

	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}
