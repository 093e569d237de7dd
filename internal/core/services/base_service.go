package services

import (
	"context"
	"log/slog"

	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	ListAuthorizer portssvc.ListAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
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

// AuthorizeMember checks that the user may act on the list via the configured
// authorizer. With no authorizer configured access is granted, which only
// happens in tests.
func (s *BaseService) AuthorizeMember(ctx context.Context, username, listID string) error {
	if s.ListAuthorizer != nil {
		return s.ListAuthorizer.AuthorizeMember(ctx, username, listID)
	}
	s.LogDebug(ctx, "No list authorizer provided, access granted by default",
		slog.String("user_id", username),
		slog.String("list_id", listID))
	return nil
}
