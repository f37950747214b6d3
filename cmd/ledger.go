package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/papersmith/papersmith/internal/store"
)

// openLedger opens the usage ledger when store.path is set. The returned
// repo is nil when the ledger is disabled; close is always safe to call.
func openLedger() (store.EventRepo, func(), error) {
	if cfg.Store.Path == "" {
		return nil, func() {}, nil
	}

	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open usage ledger: %w", err)
	}
	logger.Info("usage ledger enabled", zap.String("path", cfg.Store.Path))

	return s.EventRepo(), func() {
		if err := s.Close(); err != nil {
			logger.Warn("failed to close usage ledger", zap.Error(err))
		}
	}, nil
}
