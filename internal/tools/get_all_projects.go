package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// GetAllProjectsTool handles the get_all_projects MCP tool.
type GetAllProjectsTool struct {
	tasks TaskService
}

// NewGetAllProjectsTool creates a GetAllProjectsTool over the given service.
func NewGetAllProjectsTool(tasks TaskService) *GetAllProjectsTool {
	return &GetAllProjectsTool{tasks: tasks}
}

// Definition returns the MCP tool definition for registration.
func (t *GetAllProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_all_projects",
		mcp.WithDescription(
			"Get all Linear projects visible to the account, regardless of the "+
				"current team, including their teams and start/target dates.",
		),
	)
}

// Handle processes the get_all_projects tool call.
func (t *GetAllProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := t.tasks.ListProjects(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	if len(projects) == 0 {
		return mcp.NewToolResultText("No projects found."), nil
	}
	return jsonResult("All your projects:", projects), nil
}
