package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application-level configuration.
type Config struct {
	APIURL      string // Base URL of the HayAI backend
	SessionPath string // Path to the persisted session file
	LogPath     string // Path to the debug log file
}

// Load reads configuration from environment variables.
//
//	TERMINALCANVAS_API      — backend base URL (default: http://localhost:8000)
//	TERMINALCANVAS_SESSION  — session file path (default: ~/.config/terminalcanvas/session.json)
//	TERMINALCANVAS_LOG      — log file path (default: ~/.config/terminalcanvas/terminalcanvas.log)
func Load() (Config, error) {
	api := os.Getenv("TERMINALCANVAS_API")
	if api == "" {
		api = "http://localhost:8000"
	}
	parsed, err := url.Parse(api)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid TERMINALCANVAS_API: must be an absolute URL")
	}
	switch parsed.Scheme {
	case "http", "https":
	default:
		return Config{}, fmt.Errorf("invalid TERMINALCANVAS_API: scheme must be http or https")
	}
	api = strings.TrimRight(parsed.String(), "/")

	sessionPath := os.Getenv("TERMINALCANVAS_SESSION")
	logPath := os.Getenv("TERMINALCANVAS_LOG")
	if sessionPath == "" || logPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		if sessionPath == "" {
			sessionPath = filepath.Join(home, ".config", "terminalcanvas", "session.json")
		}
		if logPath == "" {
			logPath = filepath.Join(home, ".config", "terminalcanvas", "terminalcanvas.log")
		}
	}

	return Config{
		APIURL:      api,
		SessionPath: sessionPath,
		LogPath:     logPath,
	}, nil
}
