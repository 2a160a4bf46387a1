package email

import (
	"context"

	notificationsapp "github.com/portal/backend/internal/application/notifications"
	"go.uber.org/zap"
)

var _ notificationsapp.EmailSender = (*LogSender)(nil)

// LogSender records outgoing email to the log instead of delivering it.
// Used in development environments without a mail API key.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a log-only sender
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, to, subject, html string) error {
	s.logger.Info("email suppressed (log-only sender)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(html)),
	)
	return nil
}
