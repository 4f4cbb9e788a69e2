// Command webidl-updater keeps the Web IDL of published specs up to date.
package main

import (
	"context"
	"fmt"
	"os"

	configfile "github.com/custodia-labs/webidl-updater/internal/adapters/driven/config/file"
	"github.com/custodia-labs/webidl-updater/internal/adapters/driven/fetch"
	storagefile "github.com/custodia-labs/webidl-updater/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/webidl-updater/internal/adapters/driving/cli"
	"github.com/custodia-labs/webidl-updater/internal/catalog"
	"github.com/custodia-labs/webidl-updater/internal/connectors/github"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driven"
	"github.com/custodia-labs/webidl-updater/internal/core/services"
	"github.com/custodia-labs/webidl-updater/internal/extract"
	"github.com/custodia-labs/webidl-updater/internal/webidl"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetFactory(build)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// build wires the adapters into the core services.
func build(opts cli.Options) (*cli.Services, error) {
	configStore, err := configfile.NewConfigStore(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if opts.OutputDir != "" {
		settings.OutputDir = opts.OutputDir
	}
	if opts.SourcesFile != "" {
		settings.SourcesFile = opts.SourcesFile
	}

	fetcher := fetch.NewFetcher(settings.FetchTimeout)
	sources := catalog.New(settings.SourcesFile)
	reports := storagefile.NewReportStore(settings.OutputDir)
	extractor := extract.New()
	engine := webidl.NewEngine()

	var host driven.CodeHost
	if settings.GitHubToken != "" {
		host = github.NewHost(github.NewClient(context.Background(), settings.GitHubToken))
	}

	return &cli.Services{
		Rewrite:  services.NewRewriteService(sources, fetcher, extractor, engine, reports, *settings),
		Submit:   services.NewSubmitService(sources, reports, host),
		Settings: settingsService,
		Extract:  services.NewExtractService(extractor, engine),
		Resolver: catalog.NewResolver(fetcher),
	}, nil
}
