package linear

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"
)

// Executor abstracts the GraphQL transport so the session and resolver
// can be tested against a fake.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error)
}

// Session owns the per-process API context: the authenticated viewer,
// the current team, and the workflow-state catalog keyed by upper-cased
// name for case-insensitive lookup.
//
// The state catalog is a cache built once during Initialize, not a live
// view. After initialization the session is read-mostly: only
// SetCurrentTeam mutates it, by replacing the team value whole. Callers
// switching teams concurrently with in-flight team-scoped calls must
// serialize those themselves.
type Session struct {
	client       Executor
	defaultState string

	user        User
	team        *Team
	states      map[string]WorkflowState
	initialized bool
}

// NewSession allocates a session without touching the network.
// Initialize must be called before any other method succeeds.
func NewSession(client Executor, defaultState string) *Session {
	return &Session{
		client:       client,
		defaultState: defaultState,
	}
}

// Initialize fetches the viewer identity and the workflow-state catalog,
// and resolves teamName to the current team when non-empty. The three
// fetches have no data dependency, so they run concurrently and join
// before anything is published — on any failure the session stays
// uninitialized and no partial state is visible.
func (s *Session) Initialize(ctx context.Context, teamName string) error {
	var (
		user   User
		states map[string]WorkflowState
		team   *Team
	)

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		u, err := s.fetchViewer(ctx)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	p.Go(func(ctx context.Context) error {
		m, err := s.fetchStates(ctx)
		if err != nil {
			return err
		}
		states = m
		return nil
	})
	if teamName != "" {
		p.Go(func(ctx context.Context) error {
			t, err := s.lookupTeam(ctx, teamName)
			if err != nil {
				return err
			}
			team = &t
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}

	s.user = user
	s.states = states
	s.team = team
	s.initialized = true
	return nil
}

// User returns the cached viewer identity.
func (s *Session) User() User { return s.user }

// CurrentTeam returns the cached team pair, reporting false when no
// team has been set. Pure cache read, no upstream call.
func (s *Session) CurrentTeam() (Team, bool) {
	if s.team == nil {
		return Team{}, false
	}
	return *s.team, true
}

// SetCurrentTeam resolves name by exact match and replaces the current
// team id and name together. On a failed resolution the prior team is
// retained unchanged.
func (s *Session) SetCurrentTeam(ctx context.Context, name string) (Team, error) {
	t, err := s.lookupTeam(ctx, name)
	if err != nil {
		return Team{}, err
	}
	s.team = &t
	return t, nil
}

// RequireTeam returns the current team or a PreconditionError naming op.
func (s *Session) RequireTeam(op string) (Team, error) {
	if !s.initialized {
		return Team{}, &PreconditionError{Op: op, Msg: "session not initialized"}
	}
	if s.team == nil {
		return Team{}, &PreconditionError{Op: op}
	}
	return *s.team, nil
}

// ResolveStatus looks name up in the state catalog, case-insensitively.
func (s *Session) ResolveStatus(name string) (WorkflowState, error) {
	st, ok := s.states[strings.ToUpper(name)]
	if !ok {
		return WorkflowState{}, &InvalidStateError{Name: name, Valid: s.stateNames()}
	}
	return st, nil
}

// DefaultState resolves the configured default state name. A default
// that is missing from the catalog is a configuration error surfaced
// here, at first use, not at Initialize.
func (s *Session) DefaultState() (WorkflowState, error) {
	return s.ResolveStatus(s.defaultState)
}

func (s *Session) stateNames() []string {
	names := make([]string, 0, len(s.states))
	for _, st := range s.states {
		names = append(names, st.Name)
	}
	sort.Strings(names)
	return names
}

func (s *Session) fetchViewer(ctx context.Context) (User, error) {
	const query = `
	query Viewer {
		viewer {
			id
			name
			email
		}
	}`
	body, err := s.client.Execute(ctx, query, nil)
	if err != nil {
		var upstream *UpstreamError
		if errors.As(err, &upstream) &&
			(upstream.Status == http.StatusUnauthorized || upstream.Status == http.StatusForbidden) {
			return User{}, &AuthenticationError{Cause: err}
		}
		return User{}, err
	}
	var result struct {
		Viewer User `json:"viewer"`
	}
	if err := unwrap(body, &result); err != nil {
		return User{}, err
	}
	if result.Viewer.ID == "" {
		return User{}, &AuthenticationError{Cause: fmt.Errorf("viewer identity missing from response")}
	}
	return result.Viewer, nil
}

func (s *Session) fetchStates(ctx context.Context) (map[string]WorkflowState, error) {
	const query = `
	query WorkflowStates {
		workflowStates {
			nodes {
				id
				name
				type
			}
		}
	}`
	body, err := s.client.Execute(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching workflow states: %w", err)
	}
	var result struct {
		WorkflowStates struct {
			Nodes []WorkflowState `json:"nodes"`
		} `json:"workflowStates"`
	}
	if err := unwrap(body, &result); err != nil {
		return nil, err
	}
	states := make(map[string]WorkflowState, len(result.WorkflowStates.Nodes))
	for _, st := range result.WorkflowStates.Nodes {
		states[strings.ToUpper(st.Name)] = st
	}
	return states, nil
}

func (s *Session) lookupTeam(ctx context.Context, name string) (Team, error) {
	const query = `
	query Teams($name: String!) {
		teams(filter: { name: { eq: $name } }) {
			nodes {
				id
				name
				key
				description
			}
		}
	}`
	body, err := s.client.Execute(ctx, query, map[string]any{"name": name})
	if err != nil {
		return Team{}, fmt.Errorf("looking up team %q: %w", name, err)
	}
	var result struct {
		Teams struct {
			Nodes []Team `json:"nodes"`
		} `json:"teams"`
	}
	if err := unwrap(body, &result); err != nil {
		return Team{}, err
	}
	if len(result.Teams.Nodes) == 0 {
		return Team{}, &NotFoundError{Kind: "team", Name: name}
	}
	return result.Teams.Nodes[0], nil
}
