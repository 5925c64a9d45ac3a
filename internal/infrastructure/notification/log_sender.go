// Package notification delivers patient notifications.
package notification

import (
	"context"

	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

// LogSender writes notifications to the structured log. A push or e-mail provider
// replaces it without touching the use cases.
type LogSender struct {
	logger zerolog.Logger
}

var _ interfaces.INotificationSender = (*LogSender)(nil)

func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger.With().Str("component", "notification").Logger()}
}

func (s *LogSender) Notify(_ context.Context, userID, title, body string) error {
	s.logger.Info().Str("user_id", userID).Str("title", title).Str("body", body).Msg("notification sent")
	return nil
}
