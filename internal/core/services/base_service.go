package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/splitledger/internal/middleware"
	"github.com/SscSPs/splitledger/internal/utils"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Tracker utils.EventTracker
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Track sends an analytics event when a tracker is configured.
func (s *BaseService) Track(distinctID, event string, properties map[string]any) {
	if s.Tracker != nil {
		s.Tracker.Enqueue(distinctID, event, properties)
	}
}

// timestampPrecision is the resolution postgres keeps for timestamptz.
const timestampPrecision = time.Microsecond

// now returns the current time at the precision postgres stores, so that
// timestamps handed to clients compare equal after a round trip.
func now() time.Time {
	return time.Now().UTC().Truncate(timestampPrecision)
}
