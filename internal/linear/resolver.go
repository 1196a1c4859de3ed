package linear

import (
	"context"
	"fmt"
)

const pageSize = 50

// taskFields is the selection set shared by every query returning tasks.
const taskFields = `
	id
	identifier
	title
	description
	state {
		id
		name
		type
	}
	assignee {
		id
		name
		email
	}
	project {
		id
		name
	}
	createdAt
	updatedAt`

// Resolver turns human-supplied names (team, project, status) into API
// IDs using the session cache plus on-demand lookups, and issues the
// task mutations and queries. A project lookup is always scoped to the
// current team: a project existing globally but outside the team fails
// the operation rather than silently using it.
type Resolver struct {
	client  Executor
	session *Session
}

// NewResolver creates a resolver over the given transport and session.
func NewResolver(client Executor, session *Session) *Resolver {
	return &Resolver{client: client, session: session}
}

// CreateTaskOptions holds the inputs for CreateTask. Empty optional
// fields are treated as absent and omitted from the mutation input.
type CreateTaskOptions struct {
	Title       string
	Description string
	ProjectName string
	TeamID      string
	StatusName  string
}

// CreateTask creates a task in the explicit team (opts.TeamID) or the
// session's current team. The assignee defaults to the session user and
// the status to the configured default state when none is given. A
// mutation the API accepts but reports as unsuccessful becomes a
// *CreationFailedError, distinct from transport failures.
func (r *Resolver) CreateTask(ctx context.Context, opts CreateTaskOptions) (Task, error) {
	team := Team{ID: opts.TeamID}
	if team.ID == "" {
		var err error
		team, err = r.session.RequireTeam("create_task")
		if err != nil {
			return Task{}, err
		}
	}

	var state WorkflowState
	var err error
	if opts.StatusName != "" {
		state, err = r.session.ResolveStatus(opts.StatusName)
	} else {
		state, err = r.session.DefaultState()
	}
	if err != nil {
		return Task{}, err
	}

	input := map[string]any{
		"title":      opts.Title,
		"teamId":     team.ID,
		"stateId":    state.ID,
		"assigneeId": r.session.User().ID,
	}
	if opts.Description != "" {
		input["description"] = opts.Description
	}
	if opts.ProjectName != "" {
		project, err := r.fetchProjectForTeam(ctx, opts.ProjectName, team)
		if err != nil {
			return Task{}, err
		}
		input["projectId"] = project.ID
	}

	const mutation = `
	mutation CreateIssue($input: IssueCreateInput!) {
		issueCreate(input: $input) {
			success
			issue {` + taskFields + `
			}
		}
	}`
	body, err := r.client.Execute(ctx, mutation, map[string]any{"input": input})
	if err != nil {
		return Task{}, err
	}
	var result struct {
		IssueCreate struct {
			Success bool `json:"success"`
			Issue   Task `json:"issue"`
		} `json:"issueCreate"`
	}
	if err := unwrap(body, &result); err != nil {
		return Task{}, err
	}
	if !result.IssueCreate.Success {
		return Task{}, &CreationFailedError{Title: opts.Title}
	}
	return result.IssueCreate.Issue, nil
}

// UpdateStatus moves a task to the named workflow state. The state is
// resolved from the cache before any remote call, so an unknown name
// never reaches the API.
func (r *Resolver) UpdateStatus(ctx context.Context, taskID, statusName string) (Task, error) {
	state, err := r.session.ResolveStatus(statusName)
	if err != nil {
		return Task{}, err
	}

	const mutation = `
	mutation UpdateIssue($id: String!, $input: IssueUpdateInput!) {
		issueUpdate(id: $id, input: $input) {
			success
			issue {` + taskFields + `
			}
		}
	}`
	body, err := r.client.Execute(ctx, mutation, map[string]any{
		"id":    taskID,
		"input": map[string]any{"stateId": state.ID},
	})
	if err != nil {
		return Task{}, err
	}
	var result struct {
		IssueUpdate struct {
			Success bool `json:"success"`
			Issue   Task `json:"issue"`
		} `json:"issueUpdate"`
	}
	if err := unwrap(body, &result); err != nil {
		return Task{}, err
	}
	if !result.IssueUpdate.Success {
		return Task{}, &UpdateFailedError{TaskID: taskID}
	}
	return result.IssueUpdate.Issue, nil
}

// FilterMyTasks returns up to one page of tasks assigned to the session
// user in the current team, filtered by state type (the coarse
// enumeration, not state names) and ordered by most recent update.
// An empty stateTypes defaults to unstarted.
func (r *Resolver) FilterMyTasks(ctx context.Context, stateTypes []string) ([]Task, error) {
	team, err := r.session.RequireTeam("get_my_tasks")
	if err != nil {
		return nil, err
	}
	if len(stateTypes) == 0 {
		stateTypes = []string{"unstarted"}
	}

	filter := map[string]any{
		"assignee": map[string]any{"id": map[string]any{"eq": r.session.User().ID}},
		"team":     map[string]any{"id": map[string]any{"eq": team.ID}},
		"state":    map[string]any{"type": map[string]any{"in": stateTypes}},
	}
	return r.queryTasks(ctx, filter)
}

// SearchTasks substring-matches term against title or description
// within the current team, most recently updated first, up to one page.
func (r *Resolver) SearchTasks(ctx context.Context, term string) ([]Task, error) {
	team, err := r.session.RequireTeam("search_tasks")
	if err != nil {
		return nil, err
	}

	filter := map[string]any{
		"team": map[string]any{"id": map[string]any{"eq": team.ID}},
		"or": []map[string]any{
			{"title": map[string]any{"containsIgnoreCase": term}},
			{"description": map[string]any{"containsIgnoreCase": term}},
		},
	}
	return r.queryTasks(ctx, filter)
}

func (r *Resolver) queryTasks(ctx context.Context, filter map[string]any) ([]Task, error) {
	const query = `
	query Issues($filter: IssueFilter!, $first: Int!) {
		issues(filter: $filter, first: $first, orderBy: updatedAt) {
			nodes {` + taskFields + `
			}
		}
	}`
	body, err := r.client.Execute(ctx, query, map[string]any{
		"filter": filter,
		"first":  pageSize,
	})
	if err != nil {
		return nil, err
	}
	var result struct {
		Issues struct {
			Nodes []Task `json:"nodes"`
		} `json:"issues"`
	}
	if err := unwrap(body, &result); err != nil {
		return nil, err
	}
	return result.Issues.Nodes, nil
}

// projectNode is the wire shape of a project, with teams nested under a
// nodes key the way the API returns connections.
type projectNode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	TargetDate  string `json:"targetDate"`
	Teams       struct {
		Nodes []Team `json:"nodes"`
	} `json:"teams"`
}

func (p projectNode) toProject() Project {
	return Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		TargetDate:  p.TargetDate,
		Teams:       p.Teams.Nodes,
	}
}

// FetchProject looks name up across all visible projects, then keeps
// only those whose team set includes the current team. The not-found
// message distinguishes a project that does not exist anywhere from one
// that exists outside the current team.
func (r *Resolver) FetchProject(ctx context.Context, name string) (Project, error) {
	team, err := r.session.RequireTeam("fetch_project")
	if err != nil {
		return Project{}, err
	}
	return r.fetchProjectForTeam(ctx, name, team)
}

// fetchProjectForTeam scopes the lookup to an explicit team, which may
// differ from the session's when create_task is given a team_id.
func (r *Resolver) fetchProjectForTeam(ctx context.Context, name string, team Team) (Project, error) {
	const query = `
	query Projects($name: String!) {
		projects(filter: { name: { eq: $name } }) {
			nodes {
				id
				name
				description
				startDate
				targetDate
				teams {
					nodes {
						id
						name
					}
				}
			}
		}
	}`
	body, err := r.client.Execute(ctx, query, map[string]any{"name": name})
	if err != nil {
		return Project{}, err
	}
	var result struct {
		Projects struct {
			Nodes []projectNode `json:"nodes"`
		} `json:"projects"`
	}
	if err := unwrap(body, &result); err != nil {
		return Project{}, err
	}
	if len(result.Projects.Nodes) == 0 {
		return Project{}, &NotFoundError{Kind: "project", Name: name}
	}
	for _, node := range result.Projects.Nodes {
		for _, t := range node.Teams.Nodes {
			if t.ID == team.ID {
				return node.toProject(), nil
			}
		}
	}
	teamLabel := team.Name
	if teamLabel == "" {
		teamLabel = team.ID
	}
	return Project{}, &NotFoundError{
		Kind: "project",
		Name: name,
		Msg:  fmt.Sprintf("project %q exists but does not belong to team %q", name, teamLabel),
	}
}

// ListProjects returns all projects visible to the account, regardless
// of current team, with their team names and optional dates.
func (r *Resolver) ListProjects(ctx context.Context) ([]Project, error) {
	const query = `
	query Projects {
		projects {
			nodes {
				id
				name
				description
				startDate
				targetDate
				teams {
					nodes {
						id
						name
					}
				}
			}
		}
	}`
	body, err := r.client.Execute(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Projects struct {
			Nodes []projectNode `json:"nodes"`
		} `json:"projects"`
	}
	if err := unwrap(body, &result); err != nil {
		return nil, err
	}
	projects := make([]Project, 0, len(result.Projects.Nodes))
	for _, node := range result.Projects.Nodes {
		projects = append(projects, node.toProject())
	}
	return projects, nil
}
