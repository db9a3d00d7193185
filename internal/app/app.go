package app

import (
	"fmt"

	"go.uber.org/zap"

	"mostro/internal/crypto"
	"mostro/internal/domain"
)

// App carries the per-invocation dependency graph for commands: resolved
// configuration, the logger, and the client identity when one is
// configured.
type App struct {
	Config Config
	Log    *zap.Logger
	Keys   *crypto.Keyring // nil when no secret key is configured
}

// New builds the app context from cfg.
func New(cfg Config) (*App, error) {
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	a := &App{Config: cfg, Log: log}
	if cfg.SecretKey != "" {
		keys, err := crypto.NewKeyring(cfg.SecretKey)
		if err != nil {
			return nil, err
		}
		a.Keys = keys
	}
	return a, nil
}

// Signer exposes the keyring behind the domain interface, or a nil
// interface when the client runs without an identity.
func (a *App) Signer() domain.Signer {
	if a.Keys == nil {
		return nil
	}
	return a.Keys
}
