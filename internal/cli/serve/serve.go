package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tasktracker/internal/api"
	"github.com/thenoetrevino/tasktracker/internal/cli"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task tracker API",
		Long: `Serve the JSON API over HTTP until SIGINT or SIGTERM.

Examples:
  tasktracker serve
  tasktracker serve --addr=127.0.0.1:9000
  TRACKER_DB_DRIVER=postgres TRACKER_DB_DSN=postgres://... tasktracker serve
`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return err
	}

	cfg := cliInstance.Config.Server
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := api.NewRouter(cliInstance.App, api.NewMetrics())
	if err != nil {
		return err
	}

	server, err := NewServer(cfg, router, cliInstance.App.Logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Start(ctx)
}
