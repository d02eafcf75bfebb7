package cli

import (
	"inventory/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// serveCmd starts the HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API. The database schema is migrated on startup.

RabbitMQ, Redis and MinIO are used when RABBITMQ_URL, REDIS_ADDR and
MINIO_ENDPOINT are set; startup fails if a configured service is unreachable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) (err error) {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	application, err := app.New(ctx, rt.cfg, rt.log)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, application.Close())
	}()

	return application.Run(ctx)
}
