// Package config loads the process configuration from environment
// variables. Each variable is read under the TASKTRACKER_ namespace
// first, falling back to the bare name (LINEAR_*, TRACKINGTIME_*).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Env is the full environment configuration.
type Env struct {
	// LinearAPIKey authenticates against the issue tracker.
	LinearAPIKey string `envconfig:"LINEAR_API_KEY" required:"true"`
	// LinearTeam, when set, becomes the current team at startup.
	// When empty the session starts teamless and team-scoped tools
	// fail until set_current_team is called.
	LinearTeam string `envconfig:"LINEAR_TEAM"`
	// LinearDefaultState is the workflow-state name used when task
	// creation gives no explicit status.
	LinearDefaultState string `envconfig:"LINEAR_DEFAULT_STATE" default:"Todo"`

	// TrackingTimeAPIKey is a pre-encoded basic-auth pair. Takes
	// precedence over user/password when both are set.
	TrackingTimeAPIKey   string `envconfig:"TRACKINGTIME_API_KEY"`
	TrackingTimeUser     string `envconfig:"TRACKINGTIME_USER"`
	TrackingTimePassword string `envconfig:"TRACKINGTIME_PASSWORD"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// HistoryDB is the path of the local invocation log database.
	// Empty disables the log entirely.
	HistoryDB string `envconfig:"HISTORY_DB"`
}

// Load reads the environment. HistoryDB defaults to
// ~/.task-tracker/history.db when unset and the home dir is resolvable.
func Load() (*Env, error) {
	var env Env
	// The prefix makes TASKTRACKER_LINEAR_API_KEY win over the
	// envconfig-tagged LINEAR_API_KEY fallback.
	if err := envconfig.Process("TASKTRACKER", &env); err != nil {
		return nil, fmt.Errorf("loading env: %w", err)
	}
	if env.HistoryDB == "" && !historyDBPresent() {
		if home, err := os.UserHomeDir(); err == nil {
			env.HistoryDB = filepath.Join(home, ".task-tracker", "history.db")
		}
	}
	return &env, nil
}

// historyDBPresent reports whether either form of the history variable
// is set at all. Present-but-empty means the user disabled the log.
func historyDBPresent() bool {
	for _, key := range []string{"TASKTRACKER_HISTORY_DB", "HISTORY_DB"} {
		if _, ok := os.LookupEnv(key); ok {
			return true
		}
	}
	return false
}

// HasTracking reports whether any time-tracking credentials are present.
func (e *Env) HasTracking() bool {
	return e.TrackingTimeAPIKey != "" || (e.TrackingTimeUser != "" && e.TrackingTimePassword != "")
}

// SlogLevel parses LogLevel, defaulting to info on unknown values.
func (e *Env) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
