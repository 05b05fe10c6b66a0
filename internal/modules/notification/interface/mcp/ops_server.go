package mcp

import (
	"context"
	"encoding/json"
	"time"

	"Gigbell/internal/modules/notification/application/service"
	"Gigbell/pkg/util"
	"Gigbell/pkg/zlog"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const (
	ToolDispatchDue         = "dispatch_due"
	ToolReconcile           = "reconcile_new_performances"
	ToolForceNewPerformance = "force_new_performance"
)

// OpsTools 运维工具，参数和 HTTP 管理接口保持一致
type OpsTools struct {
	svc     service.DispatchService
	timeout time.Duration
}

func NewOpsTools(svc service.DispatchService, timeout time.Duration) *OpsTools {
	return &OpsTools{svc: svc, timeout: timeout}
}

// NewOpsServer 注册全部运维工具
func NewOpsServer(name, version string, tools *OpsTools) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
	)
	tools.Register(s)
	return s
}

func (t *OpsTools) Register(s *server.MCPServer) {
	s.AddTool(
		mcplib.NewTool(ToolDispatchDue,
			mcplib.WithDescription("Create due ticket-open and D-1 notifications"),
			mcplib.WithString("now",
				mcplib.Description("Evaluation time in RFC3339, defaults to the current time"),
			),
		),
		t.handleDispatchDue,
	)

	s.AddTool(
		mcplib.NewTool(ToolReconcile,
			mcplib.WithDescription("Backfill new-performance notifications for recently created performances"),
			mcplib.WithNumber("hours",
				mcplib.Description("Look-back window in hours, defaults to 24"),
			),
		),
		t.handleReconcile,
	)

	s.AddTool(
		mcplib.NewTool(ToolForceNewPerformance,
			mcplib.WithDescription("Notify followers of the given artists about a performance"),
			mcplib.WithNumber("perf_id",
				mcplib.Required(),
				mcplib.Description("Performance id"),
			),
			mcplib.WithString("artist_ids",
				mcplib.Description("Comma separated artist ids, e.g. 1,2"),
			),
		),
		t.handleForceNewPerformance,
	)
}

func (t *OpsTools) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.timeout > 0 {
		return context.WithTimeout(ctx, t.timeout)
	}
	return context.WithCancel(ctx)
}

func (t *OpsTools) handleDispatchDue(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	var now *time.Time
	if raw := request.GetString("now", ""); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return mcplib.NewToolResultError("invalid now, expect RFC3339: " + err.Error()), nil
		}
		now = &parsed
	}

	ctx, cancel := t.withTimeout(ctx)
	defer cancel()
	res, err := t.svc.Dispatch(ctx, now)
	if err != nil {
		zlog.Error("mcp dispatch_due failed", zap.Error(err))
		return mcplib.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (t *OpsTools) handleReconcile(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	hours := request.GetInt("hours", service.DefaultReconcileHours)

	ctx, cancel := t.withTimeout(ctx)
	defer cancel()
	res, err := t.svc.Reconcile(ctx, hours)
	if err != nil {
		zlog.Error("mcp reconcile failed", zap.Error(err))
		return mcplib.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (t *OpsTools) handleForceNewPerformance(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	perfID, err := request.RequireInt("perf_id")
	if err != nil {
		return mcplib.NewToolResultError(err.Error()), nil
	}
	if perfID <= 0 {
		return mcplib.NewToolResultError("perf_id must be positive"), nil
	}
	artistIDs, err := util.ParseInt64List(request.GetString("artist_ids", ""))
	if err != nil {
		return mcplib.NewToolResultError("invalid artist_ids: " + err.Error()), nil
	}

	ctx, cancel := t.withTimeout(ctx)
	defer cancel()
	res, err := t.svc.NotifyOnNewPerformance(ctx, int64(perfID), artistIDs)
	if err != nil {
		zlog.Error("mcp force_new_performance failed", zap.Int("perf_id", perfID), zap.Error(err))
		return mcplib.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcplib.NewToolResultError(err.Error()), nil
	}
	return mcplib.NewToolResultText(string(b)), nil
}
