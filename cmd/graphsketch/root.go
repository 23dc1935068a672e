package main

import (
	"fmt"
	"os"

	"github.com/ritzau/graphsketch/pkg/config"
	"github.com/ritzau/graphsketch/pkg/editor"
	"github.com/ritzau/graphsketch/pkg/graph"
	"github.com/ritzau/graphsketch/pkg/logging"
	"github.com/spf13/cobra"
)

// app carries what the root command resolved for its subcommands
type app struct {
	cfg        *config.Config
	configPath string
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "graphsketch",
		Short: "Interactive graph sketching engine",
		Long: "graphsketch builds graphs from pointer input: click to place vertices,\n" +
			"click two vertices to connect them, switch to delete mode to remove either.\n" +
			"It serves an HTTP API for a browser renderer or runs command scripts headlessly.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.CountP("verbose", "v", "Increase log verbosity (-v debug, -vv trace)")
	pf.String("verbosity", "", "Log level: trace, debug, info, warn, error")
	pf.Bool("json-logs", false, "Write logs as JSON")
	pf.StringVar(&a.configPath, "config", config.DefaultFile, "Config file (TOML)")

	// Editor settings shared by serve and run
	pf.Float64("radius", editor.DefaultRadius, "Radius of placed vertices")
	pf.Float64("tolerance", 0, "Extra hit-test margin around vertices")
	pf.String("hit-shape", "box", "Vertex hit region: box or circle")
	pf.String("loops", "twice", "Self-loop entries in the incident index: twice or once")

	cmd.AddCommand(
		serveCmd(a),
		runCmd(a),
	)
	return cmd
}

// init loads configuration and sets up logging
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadFile(cmd.Flags(), a.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := setupLogging(cfg); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	a.cfg = cfg

	logging.Debug("Configuration loaded",
		"file", cfg.File,
		"radius", cfg.Radius,
		"tolerance", cfg.Tolerance,
		"hitShape", cfg.HitShape,
		"loops", cfg.Loops,
	)
	return nil
}

func setupLogging(cfg *config.Config) error {
	level, err := logging.LevelFor(cfg.Verbosity, cfg.VerboseCnt)
	if err != nil {
		return err
	}
	// stdout is reserved for reports
	logging.SetOutput(os.Stderr)
	if cfg.JSONLogs {
		logging.SetJSONOutput(level)
	} else {
		logging.SetLevel(level)
	}
	return nil
}

// newGraph creates an empty graph using the configured policies
func newGraph(cfg *config.Config) *graph.Graph {
	return graph.New(
		graph.WithLoopPolicy(cfg.LoopPolicy()),
		graph.WithHitShape(cfg.Shape()),
	)
}

func editorSettings(cfg *config.Config) editor.Settings {
	return editor.Settings{
		Radius:    cfg.Radius,
		Tolerance: cfg.Tolerance,
		HitShape:  cfg.Shape(),
	}
}
