package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reminia/task-tracker/internal/linear"
	"github.com/reminia/task-tracker/internal/trackingtime"
)

// --- Test helpers ---

func request(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, r)
	require.NotEmpty(t, r.Content)
	text, ok := r.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", r.Content[0])
	return text.Text
}

// fakeTasks records calls and plays back canned results.
type fakeTasks struct {
	createOpts   *linear.CreateTaskOptions
	filterStates []string
	searchTerm   string

	task     linear.Task
	tasks    []linear.Task
	projects []linear.Project
	err      error
}

func (f *fakeTasks) CreateTask(_ context.Context, opts linear.CreateTaskOptions) (linear.Task, error) {
	f.createOpts = &opts
	return f.task, f.err
}

func (f *fakeTasks) UpdateStatus(_ context.Context, taskID, statusName string) (linear.Task, error) {
	return f.task, f.err
}

func (f *fakeTasks) FilterMyTasks(_ context.Context, stateTypes []string) ([]linear.Task, error) {
	f.filterStates = stateTypes
	return f.tasks, f.err
}

func (f *fakeTasks) SearchTasks(_ context.Context, term string) ([]linear.Task, error) {
	f.searchTerm = term
	return f.tasks, f.err
}

func (f *fakeTasks) ListProjects(_ context.Context) ([]linear.Project, error) {
	return f.projects, f.err
}

type fakeTeams struct {
	gotName string
	team    linear.Team
	err     error
}

func (f *fakeTeams) SetCurrentTeam(_ context.Context, name string) (linear.Team, error) {
	f.gotName = name
	return f.team, f.err
}

// fakeTracker keeps one active entry like the remote does.
type fakeTracker struct {
	active  *trackingtime.Entry
	notes   string
	notesID string
	err     error
}

func (f *fakeTracker) Start(_ context.Context, project, taskLabel string) (trackingtime.Entry, error) {
	if f.err != nil {
		return trackingtime.Entry{}, f.err
	}
	f.active = &trackingtime.Entry{ID: "41783", Name: taskLabel, Project: project, State: "TRACKING"}
	return *f.active, nil
}

func (f *fakeTracker) Stop(_ context.Context, taskID string) (trackingtime.Entry, error) {
	if f.err != nil {
		return trackingtime.Entry{}, f.err
	}
	entry := trackingtime.Entry{State: "PAUSED"}
	if f.active != nil {
		entry.ID = f.active.ID
	}
	f.active = nil
	return entry, nil
}

func (f *fakeTracker) Active(_ context.Context) (trackingtime.Entry, bool, error) {
	if f.err != nil {
		return trackingtime.Entry{}, false, f.err
	}
	if f.active == nil {
		return trackingtime.Entry{}, false, nil
	}
	return *f.active, true, nil
}

func (f *fakeTracker) AddNotes(_ context.Context, eventID, notes string) (trackingtime.Entry, error) {
	if f.err != nil {
		return trackingtime.Entry{}, f.err
	}
	f.notesID, f.notes = eventID, notes
	return trackingtime.Entry{ID: "7", Notes: notes}, nil
}

// --- create_task ---

func TestCreateTaskTool_RequiresTitle(t *testing.T) {
	tool := NewCreateTaskTool(&fakeTasks{})

	result, err := tool.Handle(context.Background(), request(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "title")
}

func TestCreateTaskTool_PassesAllOptions(t *testing.T) {
	f := &fakeTasks{task: linear.Task{ID: "I1", Identifier: "ENG-1", Title: "Fix bug"}}
	tool := NewCreateTaskTool(f)

	result, err := tool.Handle(context.Background(), request(map[string]any{
		"title":        "Fix bug",
		"description":  "repro attached",
		"project_name": "Platform",
		"status_name":  "In Progress",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "ENG-1")

	require.NotNil(t, f.createOpts)
	assert.Equal(t, "Fix bug", f.createOpts.Title)
	assert.Equal(t, "repro attached", f.createOpts.Description)
	assert.Equal(t, "Platform", f.createOpts.ProjectName)
	assert.Equal(t, "In Progress", f.createOpts.StatusName)
	assert.Empty(t, f.createOpts.TeamID)
}

func TestCreateTaskTool_DomainErrorBecomesTextResult(t *testing.T) {
	f := &fakeTasks{err: &linear.PreconditionError{Op: "create_task"}}
	tool := NewCreateTaskTool(f)

	result, err := tool.Handle(context.Background(), request(map[string]any{"title": "x"}))
	require.NoError(t, err, "domain errors never surface as Go errors")
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "current team")
}

// --- set_current_team ---

func TestSetCurrentTeamTool(t *testing.T) {
	f := &fakeTeams{team: linear.Team{ID: "T1", Name: "Engineering"}}
	tool := NewSetCurrentTeamTool(f)

	result, err := tool.Handle(context.Background(), request(map[string]any{"team_name": "Engineering"}))
	require.NoError(t, err)
	assert.Equal(t, "Engineering", f.gotName)
	assert.Contains(t, resultText(t, result), "Engineering")
	assert.Contains(t, resultText(t, result), "T1")
}

func TestSetCurrentTeamTool_NotFound(t *testing.T) {
	f := &fakeTeams{err: &linear.NotFoundError{Kind: "team", Name: "Ghost"}}
	tool := NewSetCurrentTeamTool(f)

	result, err := tool.Handle(context.Background(), request(map[string]any{"team_name": "Ghost"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), `team "Ghost" not found`)
}

// --- get_my_tasks ---

func TestGetMyTasksTool_ScalarStatusNormalizedToList(t *testing.T) {
	f := &fakeTasks{tasks: []linear.Task{{ID: "I1", Title: "One"}}}
	tool := NewGetMyTasksTool(f)

	_, err := tool.Handle(context.Background(), request(map[string]any{"status": "unstarted"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"unstarted"}, f.filterStates)
}

func TestGetMyTasksTool_ListStatus(t *testing.T) {
	f := &fakeTasks{tasks: []linear.Task{{ID: "I1"}}}
	tool := NewGetMyTasksTool(f)

	_, err := tool.Handle(context.Background(), request(map[string]any{
		"status": []any{"unstarted", "started"},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"unstarted", "started"}, f.filterStates)
}

func TestGetMyTasksTool_NoStatusMeansEmpty(t *testing.T) {
	f := &fakeTasks{}
	tool := NewGetMyTasksTool(f)

	result, err := tool.Handle(context.Background(), request(map[string]any{}))
	require.NoError(t, err)
	assert.Nil(t, f.filterStates, "resolver applies the unstarted default")
	assert.Contains(t, resultText(t, result), "No matching tasks")
}

// --- search_tasks ---

func TestSearchTasksTool(t *testing.T) {
	f := &fakeTasks{tasks: []linear.Task{{ID: "I1", Title: "Fix login"}}}
	tool := NewSearchTasksTool(f)

	result, err := tool.Handle(context.Background(), request(map[string]any{"search_term": "login"}))
	require.NoError(t, err)
	assert.Equal(t, "login", f.searchTerm)
	assert.Contains(t, resultText(t, result), "Found 1 tasks")
}

func TestSearchTasksTool_RequiresTerm(t *testing.T) {
	tool := NewSearchTasksTool(&fakeTasks{})

	result, err := tool.Handle(context.Background(), request(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestSearchTasksTool_NoMatches(t *testing.T) {
	tool := NewSearchTasksTool(&fakeTasks{})

	result, err := tool.Handle(context.Background(), request(map[string]any{"search_term": "ghost"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "No tasks found")
}

// --- get_all_projects ---

func TestGetAllProjectsTool(t *testing.T) {
	f := &fakeTasks{projects: []linear.Project{
		{ID: "P1", Name: "Platform", Teams: []linear.Team{{ID: "T1", Name: "Engineering"}}},
	}}
	tool := NewGetAllProjectsTool(f)

	result, err := tool.Handle(context.Background(), request(map[string]any{}))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "Platform")
	assert.Contains(t, text, "Engineering")
}

// --- update_task_status ---

func TestUpdateTaskStatusTool_RequiresBothArgs(t *testing.T) {
	tool := NewUpdateTaskStatusTool(&fakeTasks{})

	for _, args := range []map[string]any{
		{},
		{"task_id": "I1"},
		{"status": "Done"},
	} {
		result, err := tool.Handle(context.Background(), request(args))
		require.NoError(t, err)
		assert.True(t, result.IsError, "args %v", args)
	}
}

func TestUpdateTaskStatusTool_InvalidStateListsValid(t *testing.T) {
	f := &fakeTasks{err: &linear.InvalidStateError{Name: "Shipped", Valid: []string{"Done", "Todo"}}}
	tool := NewUpdateTaskStatusTool(f)

	result, err := tool.Handle(context.Background(), request(map[string]any{
		"task_id": "I1", "status": "Shipped",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "valid states: Done, Todo")
}

// --- tracking tools ---

func TestStartThenActiveTracking_IDsMatch(t *testing.T) {
	tracker := &fakeTracker{}
	start := NewStartTrackingTool(tracker)
	active := NewGetActiveTrackingTool(tracker)

	result, err := start.Handle(context.Background(), request(map[string]any{
		"project": "Platform", "task": "ENG-1 Fix bug",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "41783")

	result, err = active.Handle(context.Background(), request(map[string]any{}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "41783")
}

func TestStartTrackingTool_RequiresTask(t *testing.T) {
	tool := NewStartTrackingTool(&fakeTracker{})

	result, err := tool.Handle(context.Background(), request(map[string]any{"project": "Platform"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestStopTrackingTool(t *testing.T) {
	tracker := &fakeTracker{}
	_, err := tracker.Start(context.Background(), "", "task")
	require.NoError(t, err)

	tool := NewStopTrackingTool(tracker)
	result, err := tool.Handle(context.Background(), request(map[string]any{"task_id": "41783"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "PAUSED")
	assert.Nil(t, tracker.active)
}

func TestGetActiveTrackingTool_EmptyIsPlainText(t *testing.T) {
	tool := NewGetActiveTrackingTool(&fakeTracker{})

	result, err := tool.Handle(context.Background(), request(map[string]any{}))
	require.NoError(t, err)
	assert.False(t, result.IsError, "no active tracking is not an error")
	assert.Equal(t, "No active time tracking task found", resultText(t, result))
}

func TestAddTrackingNoteTool(t *testing.T) {
	tracker := &fakeTracker{}
	tool := NewAddTrackingNoteTool(tracker)

	result, err := tool.Handle(context.Background(), request(map[string]any{
		"event_id": "7", "notes": "paired on the fix",
	}))
	require.NoError(t, err)
	assert.Equal(t, "7", tracker.notesID)
	assert.Equal(t, "paired on the fix", tracker.notes)
	assert.Contains(t, resultText(t, result), "paired on the fix")
}

func TestTrackingTools_UpstreamErrorBecomesTextResult(t *testing.T) {
	tracker := &fakeTracker{err: errors.New("trackingtime api returned 500: boom")}

	for name, handle := range map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"start":  NewStartTrackingTool(tracker).Handle,
		"stop":   NewStopTrackingTool(tracker).Handle,
		"active": NewGetActiveTrackingTool(tracker).Handle,
		"notes":  NewAddTrackingNoteTool(tracker).Handle,
	} {
		result, err := handle(context.Background(), request(map[string]any{
			"task": "x", "task_id": "x", "event_id": "x", "notes": "x",
		}))
		require.NoError(t, err, name)
		assert.True(t, result.IsError, name)
		assert.Contains(t, resultText(t, result), "500", name)
	}
}

// --- helpers ---

func TestStringListArg(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want []string
	}{
		{"missing", map[string]any{}, nil},
		{"scalar", map[string]any{"status": "started"}, []string{"started"}},
		{"empty scalar", map[string]any{"status": ""}, nil},
		{"list", map[string]any{"status": []any{"a", "b"}}, []string{"a", "b"}},
		{"list with junk", map[string]any{"status": []any{"a", 3, ""}}, []string{"a"}},
		{"wrong type", map[string]any{"status": 42}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stringListArg(request(tt.args), "status")
			assert.Equal(t, tt.want, got)
		})
	}
}
