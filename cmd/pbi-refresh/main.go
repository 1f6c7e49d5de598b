// Command pbi-refresh triggers Power BI dataset refreshes for the companies
// listed in the working directory's registry.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/custodia-labs/pbi-refresh/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driven/oauth"
	storagefile "github.com/custodia-labs/pbi-refresh/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/cli"
	"github.com/custodia-labs/pbi-refresh/internal/connectors/powerbi"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driven"
	"github.com/custodia-labs/pbi-refresh/internal/core/services"
	"github.com/custodia-labs/pbi-refresh/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetWirer(wire)
	os.Exit(cli.Execute())
}

// wire builds the services for one working directory.
func wire(opts cli.WireOptions) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	if err := settingsService.Validate(); err != nil {
		logger.Warn("%s: %v", settingsService.Path(), err)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	logger.Debug("authority %s, api %s, timeout %s, %.2f req/s",
		settings.AuthorityURL, settings.APIBaseURL, settings.Timeout, settings.RequestsPerSecond)

	var cache driven.TokenCache = storagefile.NewTokenCache(opts.Dir)
	if opts.NoCache {
		cache = memory.NewTokenCache()
	}

	tokenService := services.NewTokenService(
		cache,
		oauth.NewAcquirer(settings.AuthorityURL, &http.Client{Timeout: settings.Timeout}),
		services.WithInspector(oauth.NewClaimsInspector()),
	)

	client := powerbi.NewClient(settings.APIBaseURL,
		powerbi.WithTimeout(settings.Timeout),
		powerbi.WithRateLimiter(powerbi.NewRateLimiter(settings.RequestsPerSecond)),
	)

	refreshService := services.NewRefreshService(
		file.NewSecretsSource(opts.Dir),
		file.NewRegistrySource(opts.Dir, settings.RegistryFile),
		tokenService,
		services.NewDispatchService(client),
	)

	return &cli.Services{
		Refresh:  refreshService,
		Token:    tokenService,
		Settings: settingsService,
	}, nil
}
