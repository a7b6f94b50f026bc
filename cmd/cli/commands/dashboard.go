package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/asbg75/interclubs/pkg/core/services"
	"github.com/asbg75/interclubs/pkg/dashboard"
)

// ServeDashboardCmd creates the serveDashboard command
func ServeDashboardCmd(app *AppContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:         "serveDashboard",
		Short:       "Serve the results and rankings dashboard until interrupted",
		Args:        cobra.NoArgs,
		Annotations: needsDatabase(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Cfg.Dashboard.Addr
			}
			if addr == "" {
				addr = ":8080"
			}

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			rankings := services.RankingsStore{Dir: app.Cfg.DataDir}
			server := dashboard.NewServer(app.Database, rankings, app.Metrics, app.Logger, app.Cfg.Interclubs.ClubName)
			return server.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to dashboard.addr from the config)")

	return cmd
}
