// Package cli implements the procura command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/procura-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/procura-cli/internal/adapters/driven/storage/sqlite"
	cfconn "github.com/custodia-labs/procura-cli/internal/connectors/contractsfinder"
	ooconn "github.com/custodia-labs/procura-cli/internal/connectors/openopps"
	samconn "github.com/custodia-labs/procura-cli/internal/connectors/sam"
	tedconn "github.com/custodia-labs/procura-cli/internal/connectors/ted"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driving"
	"github.com/custodia-labs/procura-cli/internal/core/services"
	"github.com/custodia-labs/procura-cli/internal/logger"
	"github.com/custodia-labs/procura-cli/internal/normalisers"
	cfnorm "github.com/custodia-labs/procura-cli/internal/normalisers/contractsfinder"
	oonorm "github.com/custodia-labs/procura-cli/internal/normalisers/openopps"
	samnorm "github.com/custodia-labs/procura-cli/internal/normalisers/sam"
	tednorm "github.com/custodia-labs/procura-cli/internal/normalisers/ted"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Wired services. Populated lazily by ensureServices; tests inject doubles
// directly.
var (
	coordinator    driving.SearchCoordinator
	configStore    driven.ConfigStore
	runStore       driven.RunStore
	sourceAdapters []driven.SourceAdapter
)

var rootCmd = &cobra.Command{
	Use:   "procura",
	Short: "Consolidated procurement notice search",
	Long: `procura searches public procurement notices across TED, OpenOpps,
SAM.gov and Contracts Finder in one run, consolidates the results into a
single deduplicated and relevance-ranked list, and exports them as JSON,
CSV, Markdown and Word reports.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.procura)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ensureServices wires the adapters, normalisers and coordinator on first
// use. Commands that touch no source APIs (version, help) never trigger it.
func ensureServices() error {
	if coordinator != nil {
		return nil
	}

	cs, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = cs

	sourceAdapters = []driven.SourceAdapter{
		tedconn.New(credential(cs, "ted.api_key", "TED_API_KEY")),
		ooconn.New(
			credential(cs, "openopps.username", "OPENOPPS_USERNAME"),
			credential(cs, "openopps.password", "OPENOPPS_PASSWORD"),
		),
		samconn.New(credential(cs, "sam.api_key", "SAM_GOV_API_KEY")),
		cfconn.New(),
	}

	registry := normalisers.NewRegistry()
	registry.Register(tednorm.New())
	registry.Register(oonorm.New())
	registry.Register(samnorm.New())
	registry.Register(cfnorm.New())

	// Run history is best-effort; a broken database disables it rather
	// than blocking searches.
	store, err := sqlite.NewStore(dataDir())
	if err != nil {
		logger.Warn("run history unavailable: %v", err)
	} else {
		runStore = store.RunStore()
	}

	coordinator = services.NewSearchCoordinator(sourceAdapters, registry, runStore)
	return nil
}

// credential reads a credential from config, falling back to the
// environment variable the original deployment scripts used.
func credential(cs driven.ConfigStore, key, envVar string) string {
	if v := cs.GetString(key); v != "" {
		return v
	}
	return os.Getenv(envVar)
}

// dataDir returns the database directory, honouring --config-dir.
func dataDir() string {
	if configDir == "" {
		return ""
	}
	return filepath.Join(configDir, "data")
}
