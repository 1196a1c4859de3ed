package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// GetMyTasksTool handles the get_my_tasks MCP tool.
type GetMyTasksTool struct {
	tasks TaskService
}

// NewGetMyTasksTool creates a GetMyTasksTool over the given service.
func NewGetMyTasksTool(tasks TaskService) *GetMyTasksTool {
	return &GetMyTasksTool{tasks: tasks}
}

// Definition returns the MCP tool definition for registration.
func (t *GetMyTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("get_my_tasks",
		mcp.WithDescription(
			"Get the Linear tasks assigned to me in the current team. "+
				"Supported status types: backlog, unstarted, started, completed, canceled, triage. "+
				"Default is unstarted. Returns at most 50 tasks, most recently updated first.",
		),
		mcp.WithArray("status",
			mcp.Description("Status types to filter by; a single string is also accepted"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

// Handle processes the get_my_tasks tool call.
func (t *GetMyTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	states := stringListArg(req, "status")

	tasks, err := t.tasks.FilterMyTasks(ctx, states)
	if err != nil {
		return errorResult(err), nil
	}
	if len(tasks) == 0 {
		return mcp.NewToolResultText("No matching tasks assigned to you."), nil
	}
	return jsonResult(fmt.Sprintf("Your tasks (%d, newest first, truncated at 50):", len(tasks)), tasks), nil
}
