// Package app bundles the long-lived services created at startup: config,
// logger, durable store, theme manager, session store, and the API gateway.
// Stores are owned here and injected explicitly; there are no package-level
// singletons.
package app

import (
	"fmt"
	"time"

	"github.com/sefyapp/sefy/internal/api"
	"github.com/sefyapp/sefy/internal/config"
	"github.com/sefyapp/sefy/internal/logger"
	"github.com/sefyapp/sefy/internal/session"
	"github.com/sefyapp/sefy/internal/store"
	"github.com/sefyapp/sefy/internal/theme"
)

// Context carries every long-lived service.
type Context struct {
	Config  *config.Config
	Log     *logger.Logger
	Store   *store.Store
	Theme   *theme.Manager
	Session *session.Store
	API     *api.Client
}

// New wires the full service graph from a loaded configuration.
func New(cfg *config.Config, log *logger.Logger) (*Context, error) {
	st, err := store.New(cfg.StatePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	client := api.New(api.Options{
		BaseURL: cfg.APIURL,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		Tokens:  api.StoreTokenSource{Store: st},
		Logger:  log,
	})

	return &Context{
		Config:  cfg,
		Log:     log,
		Store:   st,
		Theme:   theme.NewManager(st, log),
		Session: session.New(st, client, log),
		API:     client,
	}, nil
}
