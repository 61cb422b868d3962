package main

import (
	"fmt"
	"io"

	"github.com/sefyapp/sefy/internal/app"
	"github.com/sefyapp/sefy/internal/config"
	"github.com/sefyapp/sefy/internal/logger"
)

// loadConfig resolves the configuration file, applies flag overrides, and
// re-validates the result.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	path := flags.configPath
	if path == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve state directory: %w", err)
		}
		path = config.ConfigPath(dir)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.apiURL != "" {
		cfg.APIURL = flags.apiURL
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newInteractiveContext wires the service graph for the TUI. Logs go to the
// state directory so they never fight the alternate screen for the terminal.
func newInteractiveContext(flags *rootFlags) (*app.Context, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	log, err := logger.NewFile(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	appCtx, err := app.New(cfg, log)
	if err != nil {
		log.Close()
		return nil, err
	}
	return appCtx, nil
}

// newHeadlessContext wires the service graph for one-shot subcommands. Logs
// go to the given writer, normally the command's stderr.
func newHeadlessContext(flags *rootFlags, errOut io.Writer) (*app.Context, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true, Writer: errOut})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return app.New(cfg, log)
}
