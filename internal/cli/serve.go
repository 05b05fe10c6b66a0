package cli

import (
	"os/signal"
	"syscall"

	"Gigbell/internal/app"
	"Gigbell/internal/initial"
	"Gigbell/pkg/redis"
	"Gigbell/pkg/zlog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, scheduler and push worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := opts.loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := opts.openDB(conf)
			if err != nil {
				return err
			}
			// redis 只用于跨实例实时广播，连不上时退回进程内
			if _, err := initial.NewRedisClient(ctx, conf); err != nil {
				zlog.Warn("redis unavailable, realtime stays in-process", zap.Error(err))
			}
			defer func() { _ = redis.Close() }()

			a, err := app.New(conf, db)
			if err != nil {
				return err
			}
			return a.Serve(ctx)
		},
	}
}
