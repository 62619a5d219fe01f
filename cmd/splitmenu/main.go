// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/splitpane/splitmenu/config"
	"github.com/splitpane/splitmenu/internal/log"
	"github.com/splitpane/splitmenu/internal/trace"
)

var (
	configPath = flag.String("config", "", "read the menu configuration from the TOML `file`.")
	mode       = flag.String("mode", "", "override the platform mode (ios, md, wp).")
	menuType   = flag.String("type", "", "override the menu type (reveal, overlay, push).")
	logPath    = flag.String("log", "", "append logs to `file`.")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, mainUsage)
	}
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "splitmenu: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	var w io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	logger := log.New(w)

	ctx := context.Background()
	tp, err := trace.New(ctx, logger)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("trace shutdown")
		}
	}()

	m, err := newModel(cfg, logger, tp.Tracer("github.com/splitpane/splitmenu/menu"))
	if err != nil {
		return err
	}
	defer m.destroy()
	logger.Info().Str("mode", cfg.Mode).Str("type", cfg.ResolvedMenuType()).Msg("starting")
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *menuType != "" {
		cfg.MenuType = *menuType
	}
	return cfg, cfg.Validate()
}
