package linear

import (
	"fmt"
	"strings"
)

// AuthenticationError means the API rejected or could not verify our
// credentials — typically a bad or expired LINEAR_API_KEY.
type AuthenticationError struct {
	Cause error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Cause)
}

func (e *AuthenticationError) Unwrap() error { return e.Cause }

// NotFoundError means a name-based lookup (team, project, task) resolved
// to nothing within its scope. Message preserves the in-scope vs global
// distinction for diagnosability.
type NotFoundError struct {
	Kind string // "team", "project", "task"
	Name string
	Msg  string
}

func (e *NotFoundError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// InvalidStateError means a status name is not in the workflow-state
// catalog. Valid holds the full set of known names so the caller can
// see what would have worked.
type InvalidStateError struct {
	Name  string
	Valid []string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state %q, valid states: %s", e.Name, strings.Join(e.Valid, ", "))
}

// CreationFailedError means the issueCreate mutation went through at the
// transport layer but the API reported success=false.
type CreationFailedError struct {
	Title string
}

func (e *CreationFailedError) Error() string {
	return fmt.Sprintf("failed to create task %q", e.Title)
}

// UpdateFailedError is the issueUpdate counterpart of CreationFailedError.
type UpdateFailedError struct {
	TaskID string
}

func (e *UpdateFailedError) Error() string {
	return fmt.Sprintf("failed to update task %q", e.TaskID)
}

// UpstreamError is a non-2xx transport response. Body carries the decoded
// error payload verbatim.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("linear api returned %d: %s", e.Status, e.Body)
}

// PreconditionError means a team-scoped operation was attempted before a
// current team was set (or before the session was initialized).
type PreconditionError struct {
	Op  string
	Msg string
}

func (e *PreconditionError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("%s requires a current team: set one with set_current_team or LINEAR_TEAM", e.Op)
}
