// Package server wires config, clients, session, and tools into the
// MCP server instance. This is the composition root: it creates the
// concrete implementations and injects them into the tool handlers.
// No business logic lives here — only wiring.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/reminia/task-tracker/internal/clog"
	"github.com/reminia/task-tracker/internal/config"
	"github.com/reminia/task-tracker/internal/history"
	"github.com/reminia/task-tracker/internal/linear"
	"github.com/reminia/task-tracker/internal/tools"
	"github.com/reminia/task-tracker/internal/trackingtime"
)

// Version is set at build time via ldflags.
var Version = "dev"

// tool is the shape every handler in internal/tools exposes.
type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// New creates the MCP server: loads the environment, initializes the
// Linear session (identity, workflow states, and the default team when
// LINEAR_TEAM is set), and registers all tools. Initialization is
// all-or-nothing — a failed session init fails startup rather than
// starting in a degraded mode.
//
// The returned cleanup closes the invocation log and is always non-nil.
func New(ctx context.Context) (*server.MCPServer, func(), error) {
	env, err := config.Load()
	if err != nil {
		return nil, noop, err
	}

	logger := clog.NewLogger(os.Stderr, clog.WithLevel(env.SlogLevel()))

	client := linear.NewClient(env.LinearAPIKey)
	session := linear.NewSession(client, env.LinearDefaultState)
	if err := session.Initialize(ctx, env.LinearTeam); err != nil {
		return nil, noop, fmt.Errorf("initializing linear session: %w", err)
	}
	resolver := linear.NewResolver(client, session)

	if team, ok := session.CurrentTeam(); ok {
		logger.Info("session initialized", "user", session.User().Name, "team", team.Name)
	} else {
		logger.Info("session initialized without a team", "user", session.User().Name)
	}

	cleanup := noop
	var store *history.Store
	if env.HistoryDB != "" {
		store, err = history.Open(env.HistoryDB)
		if err != nil {
			// The invocation log is best-effort; run without it.
			logger.Warn("invocation log unavailable", "path", env.HistoryDB, "error", err)
			store = nil
		} else {
			cleanup = func() { _ = store.Close() }
		}
	}

	s := server.NewMCPServer(
		"task-tracker",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	w := &wiring{server: s, logger: logger, store: store}

	w.register(tools.NewCreateTaskTool(resolver))
	w.register(tools.NewSetCurrentTeamTool(session))
	w.register(tools.NewGetMyTasksTool(resolver))
	w.register(tools.NewSearchTasksTool(resolver))
	w.register(tools.NewGetAllProjectsTool(resolver))
	w.register(tools.NewUpdateTaskStatusTool(resolver))

	if env.HasTracking() {
		var tracker *trackingtime.Client
		if env.TrackingTimeAPIKey != "" {
			tracker = trackingtime.NewClientWithKey(env.TrackingTimeAPIKey)
		} else {
			tracker = trackingtime.NewClient(env.TrackingTimeUser, env.TrackingTimePassword)
		}
		w.register(tools.NewStartTrackingTool(tracker))
		w.register(tools.NewStopTrackingTool(tracker))
		w.register(tools.NewGetActiveTrackingTool(tracker))
		w.register(tools.NewAddTrackingNoteTool(tracker))
	} else {
		logger.Warn("no trackingtime credentials, time-tracking tools disabled")
	}

	return s, cleanup, nil
}

func noop() {}

// wiring registers tools, wrapping each handler with logging and the
// optional invocation log.
type wiring struct {
	server *server.MCPServer
	logger *slog.Logger
	store  *history.Store
}

func (w *wiring) register(t tool) {
	def := t.Definition()
	w.server.AddTool(def, w.instrument(def.Name, t.Handle))
}

// instrument logs each call and records it in the invocation log. A
// history write failure is logged and never fails the tool call.
func (w *wiring) instrument(name string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := next(ctx, req)

		ok := err == nil && (result == nil || !result.IsError)
		w.logger.Debug("tool call", "tool", name, "ok", ok)

		if w.store != nil {
			args, _ := json.Marshal(req.GetArguments())
			if _, recErr := w.store.Record(name, string(args), ok, summarize(result, err)); recErr != nil {
				w.logger.Warn("recording invocation", "tool", name, "error", recErr)
			}
		}
		return result, err
	}
}

// summarize extracts a short result description for the invocation log.
func summarize(result *mcp.CallToolResult, err error) string {
	if err != nil {
		return err.Error()
	}
	if result == nil {
		return ""
	}
	for _, c := range result.Content {
		if text, ok := c.(mcp.TextContent); ok {
			const maxSummary = 200
			if len(text.Text) > maxSummary {
				return text.Text[:maxSummary]
			}
			return text.Text
		}
	}
	return ""
}
