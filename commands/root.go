package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-eddington/internal/analyzer"
	"github.com/penwyp/go-eddington/internal/config"
	"github.com/penwyp/go-eddington/internal/core/model"
	"github.com/penwyp/go-eddington/internal/presentation/formatter"
	"github.com/penwyp/go-eddington/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Data selection
	unitFlag string
	refresh  bool

	// Output related
	outputFormat string

	rootCmd = &cobra.Command{
		Use:   "go-eddington",
		Short: "Cycling Eddington number tracker",
		Long: `go-eddington synchronizes your Ride With GPS trip history into a local
cache and reports Eddington-number progress plus ride statistics.

Examples:
  go-eddington                      # Full summary with default settings
  go-eddington --unit km            # Report distances in kilometers
  go-eddington --refresh            # Discard the cache and refetch everything
  go-eddington eddington            # Only the Eddington progress section
  go-eddington yearly --output csv  # Yearly table as CSV
  go-eddington unit toggle          # Switch between miles and km`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSection(cmd, formatter.SectionSummary)
		},
	}
)

const (
	defaultBaseDir  = "~/.go-eddington"
	defaultLogFile  = "~/.go-eddington/logs/app.log"
	defaultCacheDir = "~/.go-eddington/cache"
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&unitFlag, "unit", "u", "",
		"Distance unit (miles or km); persisted as the new preference")
	rootCmd.PersistentFlags().BoolVarP(&refresh, "refresh", "r", false,
		"Discard the cached trips and fetch fresh data")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"Output format (text, json, csv)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

// runSection is the shared RunE body for the root command and every report
// subcommand.
func runSection(cmd *cobra.Command, section formatter.Section) error {
	cfg, unit, err := setup()
	if err != nil {
		return err
	}

	a := analyzer.New(&analyzer.Config{
		Unit:         unit,
		Refresh:      refresh,
		OutputFormat: outputFormat,
		Section:      section,
		BaseDir:      cfg.BaseDir,
		CacheDir:     expandPath(defaultCacheDir),
	})
	return a.Run(cmd.Context())
}

// setup initializes logging, loads the config, and resolves the display
// unit from the --unit flag or the saved preference.
func setup() (*config.Config, model.Unit, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return nil, "", fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(logLevel, logFile, debug)

	cfg, err := config.Load(expandPath(defaultBaseDir))
	if err != nil {
		return nil, "", err
	}

	unit, err := resolveUnit(cfg)
	if err != nil {
		return nil, "", err
	}
	return cfg, unit, nil
}

func resolveUnit(cfg *config.Config) (model.Unit, error) {
	if unitFlag == "" {
		return cfg.LoadUnitPreference(), nil
	}

	unit, err := model.ParseUnit(unitFlag)
	if err != nil {
		return "", err
	}
	if err := cfg.SaveUnitPreference(unit); err != nil {
		util.LogWarnf("Failed to save unit preference: %v", err)
	}
	return unit, nil
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
