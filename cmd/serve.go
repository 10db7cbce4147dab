package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fincert/internal/logger"
	"github.com/abhisek/fincert/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz as a JSON API",
	Long:  "Serve a single-learner JSON API for browser front-ends. Stops on SIGINT or SIGTERM.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, logger.New)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		origin, _ := cmd.Flags().GetString("allow-origin")
		srv := server.New(d.svc, server.Options{AllowOrigin: origin, Logger: d.logger})

		d.logger.Info("serving quiz API",
			zap.String("addr", d.cfg.ListenAddr),
			zap.Bool("history", d.store != nil))
		return srv.ListenAndServe(ctx, d.cfg.ListenAddr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides listen_addr)")
	serveCmd.Flags().String("allow-origin", "*", "Access-Control-Allow-Origin value")
}
