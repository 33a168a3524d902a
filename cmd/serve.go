package cmd

import (
	"os/signal"
	"syscall"

	"student-housing/internal/wire"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Info("Starting application",
				zap.String("app", config.App.Name),
				zap.String("port", config.App.Port),
				zap.Bool("debug", config.App.Debug),
			)

			app, err := wire.Init(config, logger)
			if err != nil {
				logger.Error("Failed to initialize application", zap.Error(err))
				return err
			}
			defer app.Teardown()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return APIServer(ctx, app.Router, config.App.Port, config.App.ShutdownTimeout, logger)
		},
	}
}
