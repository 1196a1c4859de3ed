package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartTrackingTool handles the start_tracking MCP tool.
type StartTrackingTool struct {
	tracker Tracker
}

// NewStartTrackingTool creates a StartTrackingTool over the tracker.
func NewStartTrackingTool(tracker Tracker) *StartTrackingTool {
	return &StartTrackingTool{tracker: tracker}
}

// Definition returns the MCP tool definition for registration.
func (t *StartTrackingTool) Definition() mcp.Tool {
	return mcp.NewTool("start_tracking",
		mcp.WithDescription(
			"Start time tracking for a task. The remote allows at most one "+
				"active tracking entry per account.",
		),
		mcp.WithString("project",
			mcp.Description("Project to track the task under"),
		),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description("Task label, usually composed of identifier and title"),
		),
	)
}

// Handle processes the start_tracking tool call.
func (t *StartTrackingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task := req.GetString("task", "")
	if task == "" {
		return mcp.NewToolResultError("'task' is required"), nil
	}

	entry, err := t.tracker.Start(ctx, req.GetString("project", ""), task)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult("Time tracking started:", map[string]any{"tracking_task_id": entry.ID}), nil
}
