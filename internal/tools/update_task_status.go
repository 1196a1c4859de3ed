package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// UpdateTaskStatusTool handles the update_task_status MCP tool.
type UpdateTaskStatusTool struct {
	tasks TaskService
}

// NewUpdateTaskStatusTool creates an UpdateTaskStatusTool over the given service.
func NewUpdateTaskStatusTool(tasks TaskService) *UpdateTaskStatusTool {
	return &UpdateTaskStatusTool{tasks: tasks}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateTaskStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("update_task_status",
		mcp.WithDescription(
			"Update a Linear task's workflow state. The state name is matched "+
				"case-insensitively against the team's workflow states.",
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("ID of the task to update"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New state name (e.g. Todo, In Progress, Done)"),
		),
	)
}

// Handle processes the update_task_status tool call.
func (t *UpdateTaskStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID := req.GetString("task_id", "")
	status := req.GetString("status", "")
	if taskID == "" || status == "" {
		return mcp.NewToolResultError("'task_id' and 'status' are required"), nil
	}

	task, err := t.tasks.UpdateStatus(ctx, taskID, status)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult("Task status updated successfully:", task), nil
}
