package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			if cmd.Flags().Changed("port") {
				a.Config.AppPort = port
			}

			httpApp := a.NewHTTP()
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.Logger.Info("starting server", "port", a.Config.AppPort, "storage", a.StorageName(), "events", a.EventsEnabled())
				errCh <- httpApp.Listen(a.Config.AppPort)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.Logger.Info("shutting down server")
			if err := httpApp.Shutdown(); err != nil {
				a.Logger.Error("error during shutdown", "error", err)
				return err
			}
			a.Logger.Info("server gracefully stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen address, e.g. :8080 (overrides APP_PORT)")
	return cmd
}
