package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"terminalcanvas/app"
	"terminalcanvas/infra/config"
	"terminalcanvas/infra/hayai"
	"terminalcanvas/infra/logging"
	"terminalcanvas/infra/session"
	"terminalcanvas/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: terminalcanvas [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// sessionStoreAdapter bridges the session store to what the TUI needs.
type sessionStoreAdapter struct {
	store *session.Store
}

func (a sessionStoreAdapter) SaveSession(identity app.Identity, tokens app.Tokens) error {
	return a.store.Save(session.Session{
		UserID:       identity.UserID,
		Username:     identity.Username,
		DisplayName:  identity.DisplayName,
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
	})
}

func (a sessionStoreAdapter) ClearSession() error {
	return a.store.Clear()
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("TerminalCanvas %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// 2. Build infrastructure. The log file gets the structured output a
	// TUI cannot put on the terminal it owns.
	logger, err := logging.New(cfg.LogPath)
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	sessions := session.NewStore(cfg.SessionPath)
	restored, err := sessions.Load()
	if err != nil {
		logger.Warn("loading session", zap.Error(err))
	}

	client := hayai.NewClient(cfg.APIURL, sessions, logger)

	// 3. Build services (concrete types satisfy app.* interfaces).
	authSvc := hayai.NewAuthService(client)
	accountSvc := hayai.NewAccountService(client)
	artworkSvc := hayai.NewArtworkService(client)

	var identity app.Identity
	if restored.Valid() {
		identity = restored.Identity()
	}

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Auth:     authSvc,
		Accounts: accountSvc,
		Artworks: artworkSvc,
		Users:    accountSvc,
		Sessions: sessionStoreAdapter{store: sessions},
		Identity: identity,
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "terminalcanvas: %v\n", err)
		os.Exit(1)
	}
}
