package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// AddTrackingNoteTool handles the add_tracking_note MCP tool.
type AddTrackingNoteTool struct {
	tracker Tracker
}

// NewAddTrackingNoteTool creates an AddTrackingNoteTool over the tracker.
func NewAddTrackingNoteTool(tracker Tracker) *AddTrackingNoteTool {
	return &AddTrackingNoteTool{tracker: tracker}
}

// Definition returns the MCP tool definition for registration.
func (t *AddTrackingNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("add_tracking_note",
		mcp.WithDescription("Add a note to a tracking entry. Notes are limited to 5000 characters."),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("ID of the tracking event to add notes to"),
		),
		mcp.WithString("notes",
			mcp.Required(),
			mcp.Description("Notes to set on the time entry"),
		),
	)
}

// Handle processes the add_tracking_note tool call.
func (t *AddTrackingNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID := req.GetString("event_id", "")
	notes := req.GetString("notes", "")
	if eventID == "" || notes == "" {
		return mcp.NewToolResultError("'event_id' and 'notes' are required"), nil
	}

	entry, err := t.tracker.AddNotes(ctx, eventID, notes)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult("Added note to tracking entry:", entry), nil
}
