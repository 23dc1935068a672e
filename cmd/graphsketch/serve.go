package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ritzau/graphsketch/pkg/config"
	"github.com/ritzau/graphsketch/pkg/editor"
	"github.com/ritzau/graphsketch/pkg/logging"
	"github.com/ritzau/graphsketch/pkg/watcher"
	"github.com/ritzau/graphsketch/pkg/web"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editor HTTP API and live event stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), cmd.Flags())
		},
	}

	f := cmd.Flags()
	f.IntP("port", "p", 8080, "Port for the web server")
	f.Bool("open", false, "Open the browser once the server is up")
	f.BoolP("watch", "w", false, "Reload editor settings when the config file changes")
	return cmd
}

func (a *app) serve(ctx context.Context, flags *pflag.FlagSet) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := a.cfg
	server := web.NewServer(newGraph(cfg), editor.WithSettings(editorSettings(cfg)))

	if cfg.Watch {
		if err := a.watchConfig(ctx, flags, server); err != nil {
			logging.Warn("Config watching disabled", "error", err)
		}
	}

	if cfg.OpenBrowser {
		url := fmt.Sprintf("http://localhost:%d", cfg.Port)
		go func() {
			// Give the listener a moment to come up
			time.Sleep(500 * time.Millisecond)
			openBrowser(url)
		}()
	}

	return server.Start(ctx, cfg.Port)
}

// watchConfig reloads the config file on change and pushes live settings to
// the server
func (a *app) watchConfig(ctx context.Context, flags *pflag.FlagSet, server *web.Server) error {
	fw, err := watcher.NewFileWatcher(a.configPath)
	if err != nil {
		return err
	}
	if err := fw.Start(ctx); err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(fw.Events(), 200*time.Millisecond, 2*time.Second)
	debouncer.Start(ctx)

	go func() {
		current := a.cfg
		for event := range debouncer.Output() {
			updated, err := config.LoadFile(flags, a.configPath)
			if err != nil {
				logging.Error("Config reload failed, keeping previous settings", "type", event.Type.String(), "error", err)
				continue
			}

			changes := watcher.AnalyzeChanges(current, updated)
			if len(changes.Restart) > 0 {
				logging.Warn("Config changes need a restart", "keys", changes.Restart)
			}
			if !changes.NeedApply() {
				logging.Debug("Config reloaded without live changes", "type", event.Type.String())
				continue
			}

			if level, err := logging.LevelFor(updated.Verbosity, updated.VerboseCnt); err == nil {
				logging.SetLevel(level)
			}
			server.ApplySettings(editorSettings(updated))
			logging.Info("Config reloaded", "changed", changes.Live)
			current = updated
		}
	}()
	return nil
}
