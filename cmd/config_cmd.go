// Package cmd implements the debtburn CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := config.ConfigPath()
	if flagConfig != "" {
		path = flagConfig
	}
	fmt.Printf("  Config file: %s\n", path)
	if flagConfig != "" || config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Plan]")
	fmt.Printf("    Years:        %d\n", cfg.Plan.Years)
	fmt.Printf("    Strategy:     %s\n", cfg.Plan.Strategy)
	if cfg.Plan.MaxPeriods > 0 {
		fmt.Printf("    Max periods:  %d\n", cfg.Plan.MaxPeriods)
	}
	fmt.Println()

	fmt.Println("  [Emergency fund]")
	if cfg.EmergencyFund.Target != nil {
		fmt.Printf("    Target:       $%.2f\n", *cfg.EmergencyFund.Target)
		fmt.Printf("    Share:        %.0f%% of surplus\n", cfg.EmergencyFund.Percentage*100)
	} else {
		fmt.Println("    Target:       not set")
	}
	fmt.Println()

	fmt.Println("  [Storage]")
	backend := config.StorageBackend(cfg)
	fmt.Printf("    Backend:      %s\n", backend)
	switch backend {
	case "redis":
		fmt.Printf("    Redis:        %s\n", config.RedisAddr(cfg))
	case "", "sqlite":
		fmt.Printf("    Path:         %s\n", config.StoragePath(cfg))
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:      %s\n", cfg.Server.Addr)
	fmt.Printf("    Rate limit:   %d per %s\n", cfg.Server.RateLimit, cfg.Server.RateWindow)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:        %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:        %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  Run `debtburn setup` to reconfigure.")
	return nil
}
