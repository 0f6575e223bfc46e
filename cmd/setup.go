package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/config"
	"github.com/theirongolddev/debtburn/internal/engine"
	"github.com/theirongolddev/debtburn/internal/money"
	"github.com/theirongolddev/debtburn/internal/store"
	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues holds the wizard's string-typed form state.
type setupValues struct {
	years      string
	strategy   string
	fundTarget string
	fundShare  string
	backend    string
	redisAddr  string
	theme      string
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := loadConfig()

	vals := setupValues{
		years:     strconv.Itoa(cfg.Plan.Years),
		strategy:  cfg.Plan.Strategy,
		fundShare: strconv.FormatFloat(cfg.EmergencyFund.Percentage, 'f', -1, 64),
		backend:   cfg.Storage.Backend,
		redisAddr: cfg.Storage.RedisAddr,
		theme:     cfg.Appearance.Theme,
	}
	if cfg.EmergencyFund.Target != nil {
		vals.fundTarget = strconv.FormatFloat(*cfg.EmergencyFund.Target, 'f', 2, 64)
	}

	if err := newSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("\n  Setup canceled, nothing saved.")
			return nil
		}
		return err
	}

	if err := applySetup(&cfg, vals); err != nil {
		return err
	}
	path := config.ConfigPath()
	if flagConfig != "" {
		path = flagConfig
	}
	if err := config.SaveFile(path, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", path)
	fmt.Println("  Run `debtburn setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func newSetupForm(v *setupValues) *huh.Form {
	var strategies []huh.Option[string]
	for _, s := range engine.Strategies() {
		strategies = append(strategies, huh.NewOption(s.Name(), s.Name()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Planning horizon (years)").
				Description("Minimum payments amortize each balance over this many years.").
				Value(&v.years).
				Validate(validateYears),
			huh.NewSelect[string]().
				Title("Default strategy").
				Options(strategies...).
				Value(&v.strategy),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Emergency fund target").
				Description("Leave blank for no fund.").
				Value(&v.fundTarget).
				Validate(validateOptionalAmount),
			huh.NewSelect[string]().
				Title("Share of surplus sent to the fund").
				Options(
					huh.NewOption("25%", "0.25"),
					huh.NewOption("50%", "0.5"),
					huh.NewOption("75%", "0.75"),
					huh.NewOption("100%", "1"),
				).
				Value(&v.fundShare),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where to save your loans").
				Options(
					huh.NewOption("SQLite file", store.BackendSQLite),
					huh.NewOption("Redis", store.BackendRedis),
				).
				Value(&v.backend),
			huh.NewInput().
				Title("Redis address").
				Description("Only used with the Redis backend.").
				Placeholder("localhost:6379").
				Value(&v.redisAddr),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.theme),
		),
	)
}

func validateYears(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 50 {
		return errors.New("enter a whole number of years between 1 and 50")
	}
	return nil
}

func validateOptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d, err := money.Parse(s)
	if err != nil {
		return err
	}
	return money.MustBeGreaterThan0("Target", d)
}

// applySetup copies validated form values into cfg.
func applySetup(cfg *config.Config, v setupValues) error {
	years, err := strconv.Atoi(strings.TrimSpace(v.years))
	if err != nil {
		return fmt.Errorf("parsing years: %w", err)
	}
	cfg.Plan.Years = years
	cfg.Plan.Strategy = v.strategy

	cfg.EmergencyFund.Target = nil
	if strings.TrimSpace(v.fundTarget) != "" {
		d, err := money.Parse(v.fundTarget)
		if err != nil {
			return err
		}
		target := d.InexactFloat64()
		cfg.EmergencyFund.Target = &target
	}
	share, err := strconv.ParseFloat(v.fundShare, 64)
	if err != nil {
		return fmt.Errorf("parsing fund share: %w", err)
	}
	cfg.EmergencyFund.Percentage = share

	cfg.Storage.Backend = v.backend
	cfg.Storage.RedisAddr = strings.TrimSpace(v.redisAddr)
	cfg.Appearance.Theme = v.theme
	return nil
}
