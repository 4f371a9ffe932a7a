package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driving"
	"github.com/custodia-labs/fedora-migrate/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services are what the commands run against.
type Services struct {
	// Config is the persistent configuration store.
	Config driven.ConfigStore

	// History answers ledger queries.
	History driving.HistoryService

	// NewMigrator builds a migrator for one run.
	NewMigrator MigratorFactory

	// Close releases resources held by the services.
	Close func() error
}

// MigratorFactory builds a migrator from resolved options.
// The returned cleanup function releases the run's adapters.
type MigratorFactory func(ctx context.Context, opts MigrateOptions) (driving.Migrator, func() error, error)

// MigrateOptions are the effective settings of one migrate invocation,
// after command-line flags are layered over the configuration file.
type MigrateOptions struct {
	SourceDir string

	TargetURL string
	Username  string
	Password  string
	Token     string
	RateLimit float64
	Timeout   time.Duration

	RootPath    string
	MappingFile string
	MetricsAddr string
	DryRun      bool

	Settings domain.MigrationSettings
}

// ServicesBuilder opens the services once the config directory is known.
type ServicesBuilder func(configDir string) (*Services, error)

var (
	buildServices ServicesBuilder
	services      *Services
)

var rootCmd = &cobra.Command{
	Use:   "fedora-migrate",
	Short: "Migrate Fedora 3 objects into a Fedora 4 repository",
	Long: `fedora-migrate replays the version history of Fedora 3 objects against a
Fedora 4 repository. Each source version becomes a snapshot of the migrated
object, and Dublin Core and relationship datastreams become RDF properties.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return teardown()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.fedora-migrate)")
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if services != nil || buildServices == nil {
		return nil
	}
	s, err := buildServices(configDir)
	if err != nil {
		return err
	}
	services = s
	return nil
}

func teardown() error {
	if services == nil || services.Close == nil || buildServices == nil {
		return nil
	}
	err := services.Close()
	services = nil
	return err
}

// Execute runs the root command.
func Execute(ver string, builder ServicesBuilder) error {
	if ver != "" {
		version = ver
	}
	buildServices = builder
	return rootCmd.Execute()
}

func requireConfig() (driven.ConfigStore, error) {
	if services == nil || services.Config == nil {
		return nil, errors.New("configuration not available")
	}
	return services.Config, nil
}
