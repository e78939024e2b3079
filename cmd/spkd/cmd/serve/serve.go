package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/P0llen/speaker-detector/internal/api/server"
	"github.com/P0llen/speaker-detector/internal/app"
	"github.com/P0llen/speaker-detector/internal/config"
)

var addr string
var environment string

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides SPKD_HTTP_ADDR)")
	Cmd.Flags().StringVarP(&environment, "env", "e", "development", "Environment: development or production")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server.

Exposes enrollment, identification, meeting summaries and corrections under
/api/v1, plus /health, /metrics and /swagger.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}
		if addr != "" {
			settings.HTTPAddr = addr
		}

		application, err := app.InitializeApplication(settings)
		if err != nil {
			return err
		}
		defer application.Close()

		srv := server.NewServer(server.Config{
			Addr:         settings.HTTPAddr,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 10 * time.Minute,
			IdleTimeout:  120 * time.Second,
			Environment:  environment,
		}, application.Container, application.SlogLogger)

		if err := srv.Start(); err != nil {
			return err
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
