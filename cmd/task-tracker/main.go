// task-tracker: an MCP server bridging Linear and TrackingTime.
//
// It exposes task creation, search, and status updates against the
// Linear GraphQL API, plus start/stop time tracking against the
// TrackingTime API, as MCP tools over stdio.
//
// Usage:
//
//	task-tracker serve    # Start MCP server (stdio transport)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	ttserver "github.com/reminia/task-tracker/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("task-tracker v%s\n", ttserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	// Cancel session initialization on interrupt; once serving, the
	// stdio server manages its own lifecycle.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	s, cleanup, err := ttserver.New(ctx)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `task-tracker v%s — Linear + TrackingTime MCP server

Usage:
  task-tracker serve    Start the MCP server (stdio transport)

Environment:
  LINEAR_API_KEY          Linear API key (required)
  LINEAR_TEAM             Default team name (optional)
  LINEAR_DEFAULT_STATE    Default state for new tasks (default: Todo)
  TRACKINGTIME_API_KEY    Pre-encoded TrackingTime credentials
  TRACKINGTIME_USER       TrackingTime username (alternative to API key)
  TRACKINGTIME_PASSWORD   TrackingTime password
  LOG_LEVEL               debug, info, warn, error (default: info)
  HISTORY_DB              Invocation log path (empty disables)

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "task-tracker": {
        "command": "task-tracker",
        "args": ["serve"],
        "env": { "LINEAR_API_KEY": "lin_api_..." }
      }
    }
  }
`, ttserver.Version)
}
