package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/debtburn/internal/config"
	"github.com/theirongolddev/debtburn/internal/server"
)

var flagServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the plan calculator over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(c *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// request logs are Info
	if flagLogLevel == "" {
		flagLogLevel = "info"
	}
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	window, err := config.RateWindow(e.cfg)
	if err != nil {
		return err
	}
	addr := e.cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}
	progress("Serving on http://%s (Ctrl+C to stop)", addr)

	srv := server.New(server.Config{
		Addr:       addr,
		RateLimit:  e.cfg.Server.RateLimit,
		RateWindow: window,
		Years:      e.cfg.Plan.Years,
		Strategy:   e.cfg.Plan.Strategy,
		MaxPeriods: e.cfg.Plan.MaxPeriods,
		History:    e.store,
		Logger:     e.log,
	})
	return srv.Run(ctx)
}
