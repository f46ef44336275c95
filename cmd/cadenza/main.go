package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"cadenza/internal/artwork"
	"cadenza/internal/config"
	"cadenza/internal/hooks"
	"cadenza/internal/mpd"
	"cadenza/internal/panes"
	"cadenza/internal/telemetry"
	"cadenza/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: user config dir)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file (and the logs pane).
	var logFile *os.File
	if cfg.LogFile != "" {
		logFile, err = os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tel, err := telemetry.Setup(ctx)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer tel.Shutdown(context.Background())

	client, err := mpd.Dial(cfg.Address, cfg.Password)
	if err != nil {
		return fmt.Errorf("connect to mpd at %s: %w", cfg.Address, err)
	}
	defer client.Close()

	listener := mpd.NewListener(cfg.Address, cfg.Password)
	go listener.Run(ctx)

	var pipeline *artwork.Pipeline
	if cfg.Artwork.Method != "none" {
		pipeline = artwork.NewPipeline(&artwork.HalfblockEncoder{})
		pipeline.Start(ctx)
		if artwork.InTmux() {
			if err := artwork.EnablePassthrough(); err != nil {
				log.Warn("tmux passthrough unavailable", "err", err)
			}
		}
	}

	registry := panes.NewRegistry(panes.NewFactory(client, pipeline))
	app := ui.New(ui.Options{
		Tabs:           cfg.Tabs,
		Registry:       registry,
		Client:         client,
		Notifications:  listener.Notifications(),
		Artwork:        pipeline,
		Hook:           hooks.NewRunner(cfg.OnSongChange),
		UpdateInterval: cfg.UpdateInterval,
		Tracer:         tel.Tracer(),
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// mirror log lines into the logs pane alongside the file
	sinks := []io.Writer{ui.NewLogWriter(p.Send)}
	if logFile != nil {
		sinks = append(sinks, logFile)
	}
	log.SetOutput(io.MultiWriter(sinks...))
	log.SetLevel(log.DebugLevel)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
