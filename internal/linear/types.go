// Package linear implements the issue-tracker core: a thin GraphQL
// transport, a session cache holding the per-process context (viewer,
// current team, workflow-state catalog), and a resolver that turns
// human-supplied names into API IDs for task operations.
package linear

// User is the authenticated viewer identity.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Team is a scoping unit owning tasks and constraining project visibility.
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Key         string `json:"key,omitempty"`
	Description string `json:"description,omitempty"`
}

// WorkflowState is a named, typed stage in a task's lifecycle.
// Type is one of: backlog, unstarted, started, completed, canceled, triage.
type WorkflowState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// StateTypes is the fixed set of workflow-state types the API defines.
var StateTypes = []string{"backlog", "unstarted", "started", "completed", "canceled", "triage"}

// Project groups tasks and belongs to one or more teams.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Teams       []Team `json:"teams,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	TargetDate  string `json:"targetDate,omitempty"`
}

// Task is an issue as returned by the API.
type Task struct {
	ID          string         `json:"id"`
	Identifier  string         `json:"identifier"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	State       *WorkflowState `json:"state,omitempty"`
	Assignee    *User          `json:"assignee,omitempty"`
	Project     *Project       `json:"project,omitempty"`
	CreatedAt   string         `json:"createdAt,omitempty"`
	UpdatedAt   string         `json:"updatedAt,omitempty"`
}
