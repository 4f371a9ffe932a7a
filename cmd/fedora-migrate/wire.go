package main

import (
	"context"
	"fmt"

	promclient "github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/fedora-migrate/internal/adapters/driven/config/file"
	"github.com/custodia-labs/fedora-migrate/internal/adapters/driven/dublincore"
	"github.com/custodia-labs/fedora-migrate/internal/adapters/driven/fcrepo"
	"github.com/custodia-labs/fedora-migrate/internal/adapters/driven/metrics/prometheus"
	"github.com/custodia-labs/fedora-migrate/internal/adapters/driven/pathmap"
	"github.com/custodia-labs/fedora-migrate/internal/adapters/driven/rdfgraph"
	repomemory "github.com/custodia-labs/fedora-migrate/internal/adapters/driven/repository/memory"
	"github.com/custodia-labs/fedora-migrate/internal/adapters/driven/source/foxml"
	storememory "github.com/custodia-labs/fedora-migrate/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fedora-migrate/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/fedora-migrate/internal/adapters/driving/cli"
	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driving"
	"github.com/custodia-labs/fedora-migrate/internal/core/services"
	"github.com/custodia-labs/fedora-migrate/internal/logger"
)

// buildServices opens the config store and ledger for one CLI invocation.
func buildServices(configDir string) (*cli.Services, error) {
	config, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	store, err := sqlite.NewStore(config.GetString(domain.ConfigKeyLedgerDataDir))
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	logger.Debug("Ledger at %s", store.Path())

	return &cli.Services{
		Config:      config,
		History:     services.NewHistoryService(store.Ledger()),
		NewMigrator: migratorFactory(store.Ledger()),
		Close:       store.Close,
	}, nil
}

// migratorFactory picks the target and ledger for one migrate run.
// Dry runs write to an in-memory repository and keep their own ledger.
func migratorFactory(ledger driven.MigrationLedger) cli.MigratorFactory {
	return func(ctx context.Context, opts cli.MigrateOptions) (driving.Migrator, func() error, error) {
		if opts.DryRun {
			repo := repomemory.NewRepository()
			migrator, cleanup, err := newRun(ctx, opts, repo, storememory.NewLedger())
			if err != nil {
				return nil, nil, err
			}
			return migrator, func() error {
				logger.Info("Dry run wrote %d resources", len(repo.Paths()))
				return cleanup()
			}, nil
		}

		client, err := fcrepo.NewClient(fcrepo.Config{
			BaseURL:   opts.TargetURL,
			Username:  opts.Username,
			Password:  opts.Password,
			Token:     opts.Token,
			RateLimit: opts.RateLimit,
			Timeout:   opts.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return newRun(ctx, opts, client, ledger)
	}
}

// newRun wires the source, parsers, mapping and metrics of one run around
// the core services.
func newRun(
	ctx context.Context,
	opts cli.MigrateOptions,
	repo driven.TargetRepository,
	ledger driven.MigrationLedger,
) (driving.Migrator, func() error, error) {
	var overrides services.MappingTable
	if opts.MappingFile != "" {
		var err error
		overrides, err = file.LoadMappingFile(opts.MappingFile)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Loaded %d mapping overrides from %s", len(overrides), opts.MappingFile)
	}

	source, err := foxml.NewSource(opts.SourceDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Found %d FOXML files in %s", source.Len(), opts.SourceDir)

	handler := services.NewVersionHandler(
		repo,
		pathmap.NewMapper(opts.RootPath),
		rdfgraph.NewRDFXMLParser(),
		dublincore.NewParser(),
		opts.Settings,
	)
	if overrides != nil {
		handler.SetPropertyMapper(services.NewTableMapper(services.DefaultMappingTable().Merge(overrides)))
	}

	migrator := services.NewMigrationService(source, handler, ledger, opts.Settings)

	metricsCtx, stopMetrics := context.WithCancel(ctx)
	if opts.MetricsAddr != "" {
		reg := promclient.NewRegistry()
		recorder := prometheus.NewRecorder(reg)
		handler.SetMetrics(recorder)
		migrator.SetMetrics(recorder)
		go func() {
			if err := prometheus.Serve(metricsCtx, opts.MetricsAddr, reg); err != nil {
				logger.Error("metrics server: %v", err)
			}
		}()
	}

	cleanup := func() error {
		stopMetrics()
		return source.Close()
	}
	return &targetHintMigrator{Migrator: migrator}, cleanup, nil
}

// targetHintMigrator adds a configuration hint to target repository errors.
type targetHintMigrator struct {
	driving.Migrator
}

func (m *targetHintMigrator) Run(ctx context.Context) error {
	return explainTargetError(m.Migrator.Run(ctx))
}

// explainTargetError annotates errors whose cause the user can fix in config.
func explainTargetError(err error) error {
	switch {
	case err == nil:
		return nil
	case fcrepo.IsUnauthorized(err):
		return fmt.Errorf("%w (check %s and %s, or %s)", err,
			domain.ConfigKeyTargetUsername, domain.ConfigKeyTargetPassword, domain.ConfigKeyTargetToken)
	case fcrepo.IsConflict(err):
		return fmt.Errorf("%w (the object already exists in the target; choose another %s)", err, domain.ConfigKeyRootPath)
	case fcrepo.IsNotFound(err):
		return fmt.Errorf("%w (check %s)", err, domain.ConfigKeyTargetURL)
	default:
		return err
	}
}
