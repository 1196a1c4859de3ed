package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// SearchTasksTool handles the search_tasks MCP tool.
type SearchTasksTool struct {
	tasks TaskService
}

// NewSearchTasksTool creates a SearchTasksTool over the given service.
func NewSearchTasksTool(tasks TaskService) *SearchTasksTool {
	return &SearchTasksTool{tasks: tasks}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("search_tasks",
		mcp.WithDescription(
			"Search Linear tasks in the current team by title or description. "+
				"Returns at most 50 matches, most recently updated first.",
		),
		mcp.WithString("search_term",
			mcp.Required(),
			mcp.Description("Text to search for in task titles and descriptions"),
		),
	)
}

// Handle processes the search_tasks tool call.
func (t *SearchTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term := req.GetString("search_term", "")
	if term == "" {
		return mcp.NewToolResultError("Please provide a search term"), nil
	}

	tasks, err := t.tasks.SearchTasks(ctx, term)
	if err != nil {
		return errorResult(err), nil
	}
	if len(tasks) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No tasks found matching %q", term)), nil
	}
	return jsonResult(fmt.Sprintf("Found %d tasks matching %q:", len(tasks), term), tasks), nil
}
