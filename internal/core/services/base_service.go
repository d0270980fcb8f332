package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Clock returns the current time; tests pin it.
	Clock func() time.Time
}

func newBaseService() BaseService {
	return BaseService{Clock: time.Now}
}

// Now returns the service's notion of the current time.
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
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

// RequireUser rejects calls made without an acting user.
func (s *BaseService) RequireUser(userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: no acting user", apperrors.ErrUnauthorized)
	}
	return nil
}

// validationError builds a 400-class error with a client-facing message.
func validationError(msg string) error {
	return apperrors.NewBadRequestError(msg)
}

type clockSetter interface{ setClock(func() time.Time) }

func (s *BaseService) setClock(clock func() time.Time) { s.Clock = clock }

// SetClock pins the clock of a service built by this package. It is a no-op for other values.
func SetClock(svc any, clock func() time.Time) {
	if cs, ok := svc.(clockSetter); ok {
		cs.setClock(clock)
	}
}
