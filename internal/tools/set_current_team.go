package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// SetCurrentTeamTool handles the set_current_team MCP tool.
type SetCurrentTeamTool struct {
	session TeamService
}

// NewSetCurrentTeamTool creates a SetCurrentTeamTool over the session.
func NewSetCurrentTeamTool(session TeamService) *SetCurrentTeamTool {
	return &SetCurrentTeamTool{session: session}
}

// Definition returns the MCP tool definition for registration.
func (t *SetCurrentTeamTool) Definition() mcp.Tool {
	return mcp.NewTool("set_current_team",
		mcp.WithDescription("Set the current Linear team. All team-scoped tools operate within this team."),
		mcp.WithString("team_name",
			mcp.Required(),
			mcp.Description("Exact name of the team"),
		),
	)
}

// Handle processes the set_current_team tool call.
func (t *SetCurrentTeamTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("team_name", "")
	if name == "" {
		return mcp.NewToolResultError("'team_name' is required"), nil
	}

	team, err := t.session.SetCurrentTeam(ctx, name)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Set current team to: %s (%s)", team.Name, team.ID)), nil
}
