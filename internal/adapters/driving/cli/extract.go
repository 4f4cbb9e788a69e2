package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "List the Web IDL blocks of a local document",
	Long: `Extracts the Web IDL blocks of a local spec source and prints them in
document order. The blocks are also parsed, and the first syntax error is
reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractService == nil {
		return errors.New("extract service not configured")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	doc := domain.Document{
		ShortName: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		URL:       path,
		Text:      string(data),
	}

	extraction, failure, err := extractService.Extract(doc)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	for _, b := range extraction.Blocks {
		flags := b.Kind.String()
		if b.RichMarkup {
			flags += ", rich markup"
		}
		cmd.Printf("--- %s (%s)\n", b.Tag(doc.ShortName), flags)
		cmd.Println(strings.TrimRight(b.Text, "\n"))
	}
	cmd.Printf("%d blocks\n", len(extraction.Blocks))

	if failure != nil {
		cmd.Println()
		cmd.Println(failure.Context)
		return fmt.Errorf("%s: %w", failure.BareMessage, domain.ErrInvalidInput)
	}
	return nil
}
