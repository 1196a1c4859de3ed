package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StopTrackingTool handles the stop_tracking MCP tool.
type StopTrackingTool struct {
	tracker Tracker
}

// NewStopTrackingTool creates a StopTrackingTool over the tracker.
func NewStopTrackingTool(tracker Tracker) *StopTrackingTool {
	return &StopTrackingTool{tracker: tracker}
}

// Definition returns the MCP tool definition for registration.
func (t *StopTrackingTool) Definition() mcp.Tool {
	return mcp.NewTool("stop_tracking",
		mcp.WithDescription("Stop the current time tracking for a task."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("ID of the tracked task"),
		),
	)
}

// Handle processes the stop_tracking tool call.
func (t *StopTrackingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID := req.GetString("task_id", "")
	if taskID == "" {
		return mcp.NewToolResultError("'task_id' is required"), nil
	}

	entry, err := t.tracker.Stop(ctx, taskID)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult("Time tracking stopped:", entry), nil
}
