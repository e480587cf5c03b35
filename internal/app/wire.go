package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"otrctx/internal/instag"
	"otrctx/internal/logging"
	"otrctx/internal/registry"
	"otrctx/internal/store"
)

// Wire bundles the stores and logger the CLI works with.
type Wire struct {
	Config Config
	Log    logging.Logger
	Tags   *instag.Store
}

// NewWire constructs the dependency graph from cfg. Log output goes to logOut.
func NewWire(cfg Config, logOut io.Writer) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, fmt.Errorf("create home: %w", err)
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	log := logging.New(logOut, level, strings.ToLower(cfg.LogFormat))

	tags := instag.New(store.NewInstanceTagFileStore(cfg.Home))
	if err := tags.Load(); err != nil {
		return nil, fmt.Errorf("load instance tags: %w", err)
	}

	return &Wire{Config: cfg, Log: log, Tags: tags}, nil
}

// NewRegistry returns an empty registry that takes our instance tags from
// the wired store.
func (w *Wire) NewRegistry(opts ...registry.Option) *registry.Registry {
	base := []registry.Option{
		registry.WithInstanceTags(w.Tags),
		registry.WithLogger(w.Log),
	}
	return registry.New(append(base, opts...)...)
}
