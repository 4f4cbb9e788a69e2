package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/webidl-updater/internal/core/ports/driving"
	"github.com/custodia-labs/webidl-updater/internal/logger"
)

var version = "dev"

// Services used by the commands. Nil services make their commands fail.
var (
	rewriteService  driving.RewriteService
	submitService   driving.SubmitService
	settingsService driving.SettingsService
	extractService  driving.ExtractService
	sourceResolver  driving.SourceResolver
)

// Options carries the persistent flags needed to build the services.
type Options struct {
	ConfigPath  string
	OutputDir   string
	SourcesFile string
}

// Services bundles the driving ports the commands use.
type Services struct {
	Rewrite  driving.RewriteService
	Submit   driving.SubmitService
	Settings driving.SettingsService
	Extract  driving.ExtractService
	Resolver driving.SourceResolver
}

// Factory builds the services from the persistent flags.
type Factory func(opts Options) (*Services, error)

var (
	factory Factory
	opts    Options
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "webidl-updater",
	Short: "Keep the Web IDL of published specs up to date",
	Long: `webidl-updater fetches the sources of web specifications, validates
their Web IDL blocks, applies the available automatic fixes and writes the
corrected sources back with their original formatting.

The rewritten sources can then be proposed upstream as pull requests, and
syntax errors reported as issues.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress and debug output")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.webidl-updater/config.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.OutputDir, "out", "", "output directory for rewritten sources and reports")
	rootCmd.PersistentFlags().StringVar(&opts.SourcesFile, "sources", "", "spec source catalog (JSON)")
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if factory == nil {
		return nil
	}

	services, err := factory(opts)
	if err != nil {
		return err
	}
	rewriteService = services.Rewrite
	submitService = services.Submit
	settingsService = services.Settings
	extractService = services.Extract
	sourceResolver = services.Resolver
	return nil
}

// SetFactory registers the function building the services.
func SetFactory(f Factory) {
	factory = f
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
