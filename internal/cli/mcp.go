package cli

import (
	"Gigbell/internal/app"
	"Gigbell/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the ops MCP tools over stdio",
		Long:  "Serve dispatch_due, reconcile_new_performances and force_new_performance over the stdio MCP transport.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout 只留给 MCP 协议
			opts.logStderr = true
			gin.SetMode(gin.ReleaseMode)
			mutate := func(conf *config.Config) {
				conf.NotifyConfig.SchedulerEnabled = false
				conf.MCPConfig.Enabled = true
			}
			return opts.withApp(cmd.Context(), mutate, func(a *app.App) error {
				return server.ServeStdio(a.MCPServer)
			})
		},
	}
}
