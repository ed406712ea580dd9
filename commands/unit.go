package commands

import (
	"fmt"

	"github.com/penwyp/go-eddington/internal/config"
	"github.com/penwyp/go-eddington/internal/core/model"
	"github.com/penwyp/go-eddington/internal/data/cache"
	"github.com/spf13/cobra"
)

var unitCmd = &cobra.Command{
	Use:       "unit [miles|km|toggle]",
	Short:     "Set or toggle the distance unit",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"miles", "km", "toggle"},
	RunE:      runUnit,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current unit setting and cache state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(unitCmd)
	rootCmd.AddCommand(statusCmd)
}

func runUnit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(expandPath(defaultBaseDir))
	if err != nil {
		return err
	}

	value := "toggle"
	if len(args) > 0 {
		value = args[0]
	}

	var unit model.Unit
	if value == "toggle" {
		unit = cfg.LoadUnitPreference().Toggle()
	} else {
		unit, err = model.ParseUnit(value)
		if err != nil {
			return err
		}
	}

	if err := cfg.SaveUnitPreference(unit); err != nil {
		return fmt.Errorf("failed to save unit preference: %w", err)
	}
	fmt.Printf("Unit changed to: %s\n", unit)
	return printStatus(cfg, unit)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(expandPath(defaultBaseDir))
	if err != nil {
		return err
	}
	return printStatus(cfg, cfg.LoadUnitPreference())
}

func printStatus(cfg *config.Config, unit model.Unit) error {
	store, err := cache.NewStore(expandPath(defaultCacheDir))
	if err != nil {
		return err
	}

	fmt.Printf("\n=== CURRENT SETTINGS ===\n")
	fmt.Printf("Distance unit: %s\n", unit)

	exists, fetchedAt, trips := store.Info(unit)
	if exists {
		fmt.Printf("Cache status: %d trips, last synced %s\n",
			trips, fetchedAt.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Printf("Cache status: Not available\n")
	}
	return nil
}
