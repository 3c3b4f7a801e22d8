package service

import (
	"context"

	"github.com/hutchinsdata/site/internal/contact"
	"github.com/hutchinsdata/site/pkg/logger"
)

// LogNotifier writes each submission to the log. Outbound email is not wired.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, s *contact.Submission) error {
	logger.Infow("New contact submission",
		"id", s.ID,
		"name", s.Name,
		"email", s.Email,
		"message", s.Message,
		"clientIp", s.ClientIP,
	)
	return nil
}
