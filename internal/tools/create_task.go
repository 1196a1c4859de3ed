package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/reminia/task-tracker/internal/linear"
)

// CreateTaskTool handles the create_task MCP tool.
type CreateTaskTool struct {
	tasks TaskService
}

// NewCreateTaskTool creates a CreateTaskTool over the given service.
func NewCreateTaskTool(tasks TaskService) *CreateTaskTool {
	return &CreateTaskTool{tasks: tasks}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("create_task",
		mcp.WithDescription(
			"Create a new task in Linear. The task is assigned to you and created "+
				"in the current team unless an explicit team_id is given.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the task"),
		),
		mcp.WithString("description",
			mcp.Description("Task description. Don't generate one unless the user explicitly requests it."),
		),
		mcp.WithString("project_name",
			mcp.Description("Project to create the task in. Must belong to the current team."),
		),
		mcp.WithString("team_id",
			mcp.Description("Explicit team ID. The current team has usually been set in advance; don't pass this unless the user asks."),
		),
		mcp.WithString("status_name",
			mcp.Description("Initial workflow state name (optional), defaults to the configured todo state."),
		),
	)
}

// Handle processes the create_task tool call.
func (t *CreateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	task, err := t.tasks.CreateTask(ctx, linear.CreateTaskOptions{
		Title:       title,
		Description: req.GetString("description", ""),
		ProjectName: req.GetString("project_name", ""),
		TeamID:      req.GetString("team_id", ""),
		StatusName:  req.GetString("status_name", ""),
	})
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult("Task created successfully:", task), nil
}
