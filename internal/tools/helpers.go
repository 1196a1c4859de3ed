// Package tools implements the MCP tool handlers for the task tracker.
//
// Each tool is a struct with its dependencies injected via constructor,
// a Definition() returning the mcp.Tool schema, and a Handle method
// compatible with mcp-go's CallToolRequest signature. One file per tool.
//
// Every domain failure becomes a text error result — the host never
// receives a raw transport error.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/reminia/task-tracker/internal/linear"
	"github.com/reminia/task-tracker/internal/trackingtime"
)

// TaskService is the resolver surface the issue-tracker tools consume.
type TaskService interface {
	CreateTask(ctx context.Context, opts linear.CreateTaskOptions) (linear.Task, error)
	UpdateStatus(ctx context.Context, taskID, statusName string) (linear.Task, error)
	FilterMyTasks(ctx context.Context, stateTypes []string) ([]linear.Task, error)
	SearchTasks(ctx context.Context, term string) ([]linear.Task, error)
	ListProjects(ctx context.Context) ([]linear.Project, error)
}

// TeamService is the session surface the set_current_team tool consumes.
type TeamService interface {
	SetCurrentTeam(ctx context.Context, name string) (linear.Team, error)
}

// Tracker is the time-tracking surface the tracking tools consume.
type Tracker interface {
	Start(ctx context.Context, project, taskLabel string) (trackingtime.Entry, error)
	Stop(ctx context.Context, taskID string) (trackingtime.Entry, error)
	Active(ctx context.Context) (trackingtime.Entry, bool, error)
	AddNotes(ctx context.Context, eventID, notes string) (trackingtime.Entry, error)
}

// jsonResult renders v as indented JSON under a one-line prefix.
func jsonResult(prefix string, v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err))
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s\n%s", prefix, data))
}

// errorResult converts any domain error into a uniform text result.
func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

// stringListArg reads an argument that may arrive as a JSON array of
// strings or as a single scalar string, normalizing the scalar into a
// one-element list.
func stringListArg(req mcp.CallToolRequest, key string) []string {
	switch v := req.GetArguments()[key].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
