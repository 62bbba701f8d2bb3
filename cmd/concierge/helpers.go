package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/tech-concierge/internal/bestbuy"
	"github.com/Veraticus/tech-concierge/internal/catalog"
	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/concierge"
	"github.com/Veraticus/tech-concierge/internal/config"
	"github.com/Veraticus/tech-concierge/internal/llm"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/service"
	"github.com/Veraticus/tech-concierge/internal/storage"
)

// loadCatalog reads catalog.path, or the built-in catalog when unset.
func loadCatalog() (*catalog.Catalog, error) {
	path := viper.GetString("catalog.path")
	if path == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

// initStorage opens the configured session backend and runs migrations.
func initStorage(ctx context.Context) (service.SessionStore, error) {
	backend := viper.GetString("sessions.backend")
	store, err := storage.Open(backend, config.DatabasePath(viper.GetViper()))
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// sessionsPersist reports whether the configured backend keeps sessions
// after the process exits.
func sessionsPersist() bool {
	return viper.GetString("sessions.backend") != storage.BackendMemory
}

// createResponder builds the LLM responder. Without an API key the
// concierge answers with its rule-based replies, so nil is returned.
func createResponder(logger *slog.Logger) (concierge.Responder, error) {
	cfg, err := config.LoadLLMConfig(viper.GetViper())
	if errors.Is(err, common.ErrMissingConfig) {
		logger.Debug("No LLM API key configured, using rule-based replies", "provider", cfg.Provider)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	responder, err := llm.NewResponder(cfg, logger)
	if err != nil {
		return nil, err
	}
	return responder, nil
}

// newSearcher returns the Best Buy client backed by the local catalog.
func newSearcher(cat *catalog.Catalog, logger *slog.Logger) *bestbuy.Client {
	return bestbuy.NewClient(config.LoadBestBuyConfig(viper.GetViper()), cat, logger)
}

// appContext bundles what most commands need.
type appContext struct {
	catalog   *catalog.Catalog
	store     service.SessionStore
	responder concierge.Responder
	agent     *concierge.Agent
	searcher  *bestbuy.Client
	logger    *slog.Logger
}

func (a *appContext) Close() {
	if closer, ok := a.responder.(interface{ Close() }); ok {
		closer.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("Failed to close session store", "error", err)
		}
	}
}

// buildApp wires catalog, sessions, LLM and product search into an agent.
func buildApp(ctx context.Context) (*appContext, error) {
	logger := slog.Default()

	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	responder, err := createResponder(logger)
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}

	return &appContext{
		catalog:   cat,
		store:     store,
		responder: responder,
		agent:     concierge.NewAgent(cat, responder, store, logger),
		searcher:  newSearcher(cat, logger),
		logger:    logger,
	}, nil
}

// parseContext decodes a --context JSON seed. Empty input yields nil.
func parseContext(raw string) (*model.Context, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var c model.Context
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("invalid --context JSON: %w", err)
	}
	if c.Budget < 0 {
		return nil, fmt.Errorf("invalid --context JSON: budget cannot be negative")
	}
	return &c, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
