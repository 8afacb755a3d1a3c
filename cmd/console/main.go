package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/forensicvideo/console/internal/client/api"
	"github.com/forensicvideo/console/internal/client/auth"
	"github.com/forensicvideo/console/internal/client/cli"
	"github.com/forensicvideo/console/internal/client/config"
	"github.com/forensicvideo/console/internal/client/query"
	"github.com/forensicvideo/console/internal/client/session"
	"github.com/forensicvideo/console/internal/logging"
	"github.com/forensicvideo/console/internal/tui"
)

var commands = map[string]bool{
	"login":  true,
	"logout": true,
	"whoami": true,
	"upload": true,
	"report": true,
	"faces":  true,
	"poi":    true,
	"search": true,
}

// subcommandArgs returns the headless subcommand and its arguments, or nil
// when the console should start the full-screen UI. Only the first
// non-flag token counts; every supported flag takes a value, so the token
// after a bare "-x" flag is its value, not a command.
func subcommandArgs(args []string) []string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") {
				i++
			}
			continue
		}
		if commands[a] {
			return args[i:]
		}
		return nil
	}
	return nil
}

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}
	defer logFile.Close()
	logger := logging.NewFileLogger(logFile, slog.LevelInfo)

	db, err := session.OpenDatabase(ctx, cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("open session database: %v", err)
	}
	defer db.Close()
	store := session.NewSQLiteStore(db, logger)

	client := api.New(cfg.APIBaseURL, store,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger),
	)

	if args := subcommandArgs(os.Args[1:]); args != nil {
		ctrl := auth.NewController(client, store, cli.NopNavigator{}, logger)
		client.OnUnauthorized(ctrl.ForceLogout)
		ctrl.Resolve(ctx)

		app := cli.NewApp(store, client, ctrl, logger)
		if err := app.Run(ctx, args); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	nav := tui.NewNavigator()
	sender := tui.NewSender()
	ctrl := auth.NewController(client, store, nav, logger)
	client.OnUnauthorized(ctrl.ForceLogout)
	ctrl.Subscribe(func(s auth.Status) { sender.Send(tui.StatusChanged(s)) })

	deps := tui.Deps{
		Cfg:   cfg,
		Gw:    client,
		Ctrl:  ctrl,
		Cache: query.NewCache(),
		Log:   logger,
		Send:  sender.Send,
	}

	p := tea.NewProgram(tui.NewModel(ctx, deps), tea.WithAltScreen())
	nav.SetProgram(p)
	sender.SetProgram(p)

	if _, err := p.Run(); err != nil {
		log.Fatalf("%v", err)
	}
}
