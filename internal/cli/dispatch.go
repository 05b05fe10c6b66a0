package cli

import (
	"fmt"
	"time"

	"Gigbell/internal/app"
	"Gigbell/internal/config"

	"github.com/spf13/cobra"
)

// oneShot 一次性命令不跑定时器和运维端点
func oneShot(conf *config.Config) {
	conf.NotifyConfig.SchedulerEnabled = false
	conf.MCPConfig.Enabled = false
}

func newDispatchCmd(opts *rootOptions) *cobra.Command {
	var nowFlag string

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Create due ticket-open and D-1 notifications once",
		RunE: func(cmd *cobra.Command, args []string) error {
			var now *time.Time
			if nowFlag != "" {
				t, err := time.Parse(time.RFC3339, nowFlag)
				if err != nil {
					return fmt.Errorf("invalid --now, expect RFC3339: %w", err)
				}
				now = &t
			}
			return opts.withApp(cmd.Context(), oneShot, func(a *app.App) error {
				res, err := a.Dispatch.Dispatch(cmd.Context(), now)
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			})
		},
	}
	cmd.Flags().StringVar(&nowFlag, "now", "", "Evaluation time in RFC3339 (defaults to the current time)")
	return cmd
}

func newReconcileCmd(opts *rootOptions) *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Backfill new-performance notifications for recent performances",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd.Context(), oneShot, func(a *app.App) error {
				res, err := a.Dispatch.Reconcile(cmd.Context(), hours)
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			})
		},
	}
	cmd.Flags().IntVar(&hours, "hours", 24, "Look-back window in hours")
	return cmd
}
