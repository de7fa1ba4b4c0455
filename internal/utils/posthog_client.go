// Package utils holds small helpers shared by handlers and services.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// EventTracker records product analytics events. *PosthogClientWrapper
// implements it; a nil or uninitialized wrapper drops events silently.
type EventTracker interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

// Sync transition events.
const (
	EventDebtLocked       = "debt_locked"
	EventSyncProposed     = "debt_sync_proposed"
	EventSyncAccepted     = "debt_sync_accepted"
	EventSyncRejected     = "debt_sync_rejected"
	EventSyncCancelled    = "debt_sync_cancelled"
	EventReceiptPropagate = "receipt_debts_propagated"
)

// PosthogClientWrapper wraps posthog.Client so callers need not care whether
// analytics is configured.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

var _ EventTracker = (*PosthogClientWrapper)(nil)

func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return &PosthogClientWrapper{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &PosthogClientWrapper{}
	}
	logger.Info("Posthog client initialized")
	return &PosthogClientWrapper{posthogClient: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.posthogClient != nil
}

func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	if w.logger != nil {
		w.logger.Debug("Enqueueing event", slog.String("distinct_id", distinctID), slog.String("event", event))
	}
	if err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	w.posthogClient.Close()
}
