package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driving"
)

// progressInterval is how often migrate polls the migrator's status.
var progressInterval = 500 * time.Millisecond

// passwordReader reads the target password for --password-prompt.
var passwordReader = readPassword

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate objects from a FOXML export",
	Long: `Reads Fedora 3 FOXML files from the source directory and replays each
object's version history against the target Fedora 4 repository.

Flags override the values in config.toml. With --dry-run the objects are
migrated into an in-memory repository and nothing is sent to the target.`,
	RunE: runMigrate,
}

func init() {
	f := migrateCmd.Flags()
	f.String("source", "", "Directory of FOXML files")
	f.String("target-url", "", "Fedora 4 REST endpoint")
	f.String("username", "", "Target repository username")
	f.Bool("password-prompt", false, "Prompt for the target repository password")
	f.String("root-path", "", "Path prefix for migrated objects")
	f.Int("limit", -1, "Maximum number of objects to migrate (-1 for no limit)")
	f.Float64("rate-limit", 0, "Maximum requests per second to the target (0 for no limit)")
	f.Bool("import-external", false, "Copy externally referenced (E) content into the target")
	f.Bool("import-redirect", false, "Copy redirected (R) content into the target")
	f.Bool("skip-completed", false, "Skip objects completed in an earlier run")
	f.String("mapping-file", "", "YAML file of property mapping overrides")
	f.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	f.Bool("dry-run", false, "Migrate into an in-memory repository")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if services == nil || services.NewMigrator == nil {
		return errors.New("migration service not configured")
	}

	opts, err := resolveMigrateOptions(cmd, services.Config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	migrator, cleanup, err := services.NewMigrator(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cleanup != nil {
			_ = cleanup()
		}
	}()

	if opts.DryRun {
		cmd.Println("Dry run: objects are migrated into memory only.")
	}
	cmd.Printf("Migrating objects from %s...\n", opts.SourceDir)

	if err := migrateWithProgress(ctx, cmd, migrator); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	status := migrator.Status()
	cmd.Printf("Migration complete: %d objects migrated, %d skipped (run %s).\n",
		status.ObjectsProcessed, status.ObjectsSkipped, status.RunID)
	return nil
}

// migrateWithProgress runs the migrator while displaying progress updates.
func migrateWithProgress(ctx context.Context, cmd *cobra.Command, migrator driving.Migrator) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- migrator.Run(ctx)
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case err := <-errCh:
			status := migrator.Status()
			if status.ObjectsProcessed > 0 {
				cmd.Printf("\rProcessed %d objects\n", status.ObjectsProcessed)
			}
			return err
		case <-ticker.C:
			status := migrator.Status()
			if status.ObjectsProcessed > lastCount {
				cmd.Printf("\rProcessing... %d objects (%s)", status.ObjectsProcessed, status.CurrentPID)
				lastCount = status.ObjectsProcessed
			}
		}
	}
}

// resolveMigrateOptions layers changed flags over the stored configuration.
func resolveMigrateOptions(cmd *cobra.Command, cfg driven.ConfigStore) (MigrateOptions, error) {
	opts := MigrateOptions{
		Settings: domain.DefaultMigrationSettings(),
	}

	if cfg != nil {
		opts.SourceDir = cfg.GetString(domain.ConfigKeySourceDir)
		opts.TargetURL = cfg.GetString(domain.ConfigKeyTargetURL)
		opts.Username = cfg.GetString(domain.ConfigKeyTargetUsername)
		opts.Password = cfg.GetString(domain.ConfigKeyTargetPassword)
		opts.Token = cfg.GetString(domain.ConfigKeyTargetToken)
		opts.RateLimit = cfg.GetFloat(domain.ConfigKeyTargetRateLimit)
		if secs := cfg.GetInt(domain.ConfigKeyTargetTimeout); secs > 0 {
			opts.Timeout = time.Duration(secs) * time.Second
		}
		opts.RootPath = cfg.GetString(domain.ConfigKeyRootPath)
		opts.MappingFile = cfg.GetString(domain.ConfigKeyMappingFile)
		opts.MetricsAddr = cfg.GetString(domain.ConfigKeyMetricsAddr)
		opts.Settings.ImportExternal = cfg.GetBool(domain.ConfigKeyImportExternal)
		opts.Settings.ImportRedirect = cfg.GetBool(domain.ConfigKeyImportRedirect)
		opts.Settings.SkipCompleted = cfg.GetBool(domain.ConfigKeySkipCompleted)
		if _, ok := cfg.Get(domain.ConfigKeyLimit); ok {
			opts.Settings.Limit = cfg.GetInt(domain.ConfigKeyLimit)
		}
	}

	f := cmd.Flags()
	overrideString := func(name string, dst *string) {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	overrideBool := func(name string, dst *bool) {
		if f.Changed(name) {
			*dst, _ = f.GetBool(name)
		}
	}

	overrideString("source", &opts.SourceDir)
	overrideString("target-url", &opts.TargetURL)
	overrideString("username", &opts.Username)
	overrideString("root-path", &opts.RootPath)
	overrideString("mapping-file", &opts.MappingFile)
	overrideString("metrics-addr", &opts.MetricsAddr)
	overrideBool("import-external", &opts.Settings.ImportExternal)
	overrideBool("import-redirect", &opts.Settings.ImportRedirect)
	overrideBool("skip-completed", &opts.Settings.SkipCompleted)
	overrideBool("dry-run", &opts.DryRun)
	if f.Changed("limit") {
		opts.Settings.Limit, _ = f.GetInt("limit")
	}
	if f.Changed("rate-limit") {
		opts.RateLimit, _ = f.GetFloat64("rate-limit")
	}

	if prompt, _ := f.GetBool("password-prompt"); prompt {
		cmd.Print("Target password: ")
		opts.Password = passwordReader(cmd.InOrStdin())
		cmd.Println()
	}

	if opts.SourceDir == "" {
		return opts, fmt.Errorf("%w: no source directory (use --source or set %s)",
			domain.ErrInvalidInput, domain.ConfigKeySourceDir)
	}
	if opts.TargetURL == "" && !opts.DryRun {
		return opts, fmt.Errorf("%w: no target repository (use --target-url, set %s, or --dry-run)",
			domain.ErrInvalidInput, domain.ConfigKeyTargetURL)
	}
	return opts, nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
