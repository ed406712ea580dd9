// Package analyzer wires the pipeline for one CLI invocation: resolve
// credentials, synchronize the trip cache, convert distances, run the
// Eddington engine, and hand the report to a formatter.
package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/penwyp/go-eddington/internal/config"
	"github.com/penwyp/go-eddington/internal/core/model"
	"github.com/penwyp/go-eddington/internal/data/cache"
	"github.com/penwyp/go-eddington/internal/data/rwgps"
	"github.com/penwyp/go-eddington/internal/data/sync"
	"github.com/penwyp/go-eddington/internal/presentation/formatter"
	"github.com/penwyp/go-eddington/internal/util"
)

type Config struct {
	Unit         model.Unit
	Refresh      bool
	OutputFormat string
	Section      formatter.Section
	BaseDir      string
	CacheDir     string
}

type Analyzer struct {
	config *Config
}

func New(cfg *Config) *Analyzer {
	return &Analyzer{config: cfg}
}

func (a *Analyzer) Run(ctx context.Context) error {
	appCfg, err := config.Load(a.config.BaseDir)
	if err != nil {
		return err
	}

	client, err := a.buildClient(ctx, appCfg)
	if err != nil {
		return err
	}

	store, err := cache.NewStore(a.config.CacheDir)
	if err != nil {
		return err
	}

	syn := sync.New(client, store, sync.WithProgress(func(done, total int) {
		util.LogInfof("Fetched %d/%d trips", done, total)
	}))

	trips, err := syn.Sync(ctx, a.config.Unit, a.config.Refresh)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	report := BuildReport(trips, a.config.Unit)

	out, err := formatter.Create(a.config.OutputFormat, a.config.Section)
	if err != nil {
		return err
	}
	return out.Format(report)
}

// buildClient authenticates against the remote source. A fresh token is
// negotiated whenever credentials are available; otherwise a previously
// persisted token is reused.
func (a *Analyzer) buildClient(ctx context.Context, appCfg *config.Config) (*rwgps.Client, error) {
	apiKey, err := appCfg.RequireAPIKey()
	if err != nil {
		return nil, err
	}

	creds, err := appCfg.LoadCredentials()
	if err != nil {
		if !errors.Is(err, config.ErrNoCredentials) {
			return nil, err
		}

		token, tokenErr := appCfg.LoadToken()
		if tokenErr != nil {
			return nil, fmt.Errorf("no credentials configured: set RWGPS_EMAIL and RWGPS_PASSWORD or create %s/credentials.json", appCfg.BaseDir)
		}
		util.LogDebug("Using stored auth token")
		return rwgps.New(apiKey, rwgps.WithAuthToken(token)), nil
	}

	client := rwgps.New(apiKey)
	token, err := client.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, err
	}
	if err := appCfg.SaveToken(token); err != nil {
		util.LogWarnf("Failed to persist auth token: %v", err)
	}
	return client, nil
}
