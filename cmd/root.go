package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/theirongolddev/debtburn/internal/config"
	"github.com/theirongolddev/debtburn/internal/store"
)

var (
	flagConfig   string
	flagNoStore  bool
	flagQuiet    bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:          "debtburn",
	Short:        "Debt repayment planner",
	Long:         "Plan how a fixed monthly budget pays down your loans, with avalanche, snowball and double-double strategies.",
	RunE:         runPlan,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().BoolVar(&flagNoStore, "no-store", false, "Keep the scenario in memory only")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	addPlanFlags(rootCmd)
}

func loadConfig() (config.Config, error) {
	if flagConfig != "" {
		return config.LoadFile(flagConfig)
	}
	return config.Load()
}

// newLogger builds the stderr logger. --log-level wins over the config.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	name := cfg.Log.Level
	if flagLogLevel != "" {
		name = flagLogLevel
	}
	level, err := zapcore.ParseLevel(strings.ToLower(name))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", name)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

// openStore returns the configured scenario store, or an in-memory one with
// --no-store.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if flagNoStore {
		return store.NewMemory(), nil
	}
	st, err := store.Open(ctx, store.Options{
		Backend:   config.StorageBackend(cfg),
		Path:      config.StoragePath(cfg),
		RedisAddr: config.RedisAddr(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return st, nil
}

// loadScenario returns the saved scenario, or an empty one on first use.
func loadScenario(ctx context.Context, st store.Backend) (store.Scenario, error) {
	s, err := store.Load(ctx, st)
	if errors.Is(err, store.ErrNotFound) {
		return store.Scenario{}, nil
	}
	return s, err
}

// env bundles what most commands need.
type env struct {
	cfg   config.Config
	log   *zap.Logger
	store store.Store
}

func newEnv(ctx context.Context) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug("store opened", zap.String("backend", config.StorageBackend(cfg)), zap.Bool("memory", flagNoStore))
	return &env{cfg: cfg, log: log, store: st}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("closing store", zap.Error(err))
	}
	_ = e.log.Sync()
}

func progress(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}
