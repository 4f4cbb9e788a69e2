package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show current settings",
	Long: `Shows the settings in effect, merged from the config file, the
environment and the defaults.`,
	RunE: runSettingsShow,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Rewrite]")
	cmd.Printf("  Output directory: %s\n", settings.OutputDir)
	cmd.Printf("  Patches: %s\n", yesNo(!settings.NoDiff))
	cmd.Printf("  Rich markup allowed: %s\n", strings.Join(settings.HTMLAllowList, ", "))
	cmd.Printf("  Broken specs: %d\n", len(settings.BrokenSpecs))
	cmd.Println()

	cmd.Println("[Sources]")
	cmd.Printf("  Catalog: %s\n", settings.SourcesFile)
	cmd.Printf("  Fetch timeout: %s\n", settings.FetchTimeout)
	if settings.FetchConcurrency > 0 {
		cmd.Printf("  Fetch concurrency: %d\n", settings.FetchConcurrency)
	} else {
		cmd.Printf("  Fetch concurrency: unlimited\n")
	}
	cmd.Println()

	cmd.Println("[GitHub]")
	if settings.GitHubToken != "" {
		cmd.Printf("  Token: %s\n", maskToken(settings.GitHubToken))
	} else {
		cmd.Printf("  Token: (not set)\n")
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// maskToken masks a token for display.
func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
