package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// GetActiveTrackingTool handles the get_active_tracking MCP tool.
type GetActiveTrackingTool struct {
	tracker Tracker
}

// NewGetActiveTrackingTool creates a GetActiveTrackingTool over the tracker.
func NewGetActiveTrackingTool(tracker Tracker) *GetActiveTrackingTool {
	return &GetActiveTrackingTool{tracker: tracker}
}

// Definition returns the MCP tool definition for registration.
func (t *GetActiveTrackingTool) Definition() mcp.Tool {
	return mcp.NewTool("get_active_tracking",
		mcp.WithDescription("Get the currently tracked task, if any."),
	)
}

// Handle processes the get_active_tracking tool call.
func (t *GetActiveTrackingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entry, ok, err := t.tracker.Active(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	if !ok {
		return mcp.NewToolResultText("No active time tracking task found"), nil
	}
	return jsonResult("Current tracking task:", entry), nil
}
