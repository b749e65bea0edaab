/*
Place Rank terminal client.

Connects to a Place Rank API service, restores the persisted session, and
runs the interactive UI. Diagnostics go to a log file next to the session
file because the UI owns the terminal.
*/
package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"placerank/cmd/placerank/ui"
	"placerank/internal/client/api"
	"placerank/internal/client/session"
	"placerank/internal/pkg/logx"
)

func main() {
	serverURL := flag.String("server", "http://localhost:3000", "Place Rank API base URL")
	verbose := flag.Bool("verbose", false, "log at debug level")
	noFeed := flag.Bool("no-live", false, "disable the live place feed")
	flag.Parse()

	sessionPath, err := session.DefaultPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot resolve config directory:", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(sessionPath), 0o700); err != nil {
		fmt.Fprintln(os.Stderr, "cannot create config directory:", err)
		os.Exit(1)
	}

	logPath := filepath.Join(filepath.Dir(sessionPath), "client.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot open log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logx.InitFileLogger(logFile, *verbose)

	feedURL := ""
	if !*noFeed {
		feedURL, err = liveFeedURL(*serverURL)
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid server URL:", err)
			os.Exit(1)
		}
	}

	store := session.NewStore(sessionPath)
	client := api.NewClient(*serverURL, store, nil)
	app := ui.NewApp(store, client, *serverURL, feedURL, sessionPath)

	logx.Info("Client starting.", "server", *serverURL, "session", sessionPath)

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		logx.Error(err, "Client exited with error.")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// liveFeedURL derives the websocket feed endpoint from the API base URL.
func liveFeedURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws/live"
	return u.String(), nil
}
