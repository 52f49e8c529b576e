package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/promptcheck/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluate endpoint over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := bootstrap(ctx, os.Stderr)
		if err != nil {
			return err
		}

		addr := rt.cfg.HTTPAddress()
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		gin.SetMode(rt.cfg.GinMode)
		srv := server.New(server.Options{
			Addr:            addr,
			RequestTimeout:  rt.cfg.RequestTimeout,
			ShutdownTimeout: rt.cfg.ShutdownTimeout,
		}, rt.handler, rt.logger)

		if err := srv.Run(ctx); err != nil {
			return err
		}
		rt.logger.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides PORT), e.g. :8080")
}
