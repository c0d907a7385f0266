package services

import (
	"context"

	"go.uber.org/zap"
)

type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers notifications. Delivery failures never fail the request that triggered them.
type Mailer interface {
	Send(ctx context.Context, e Email) error
}

// LogMailer writes the message to the log instead of sending it.
type LogMailer struct {
	Logger func() *zap.Logger
}

func (m LogMailer) Send(_ context.Context, e Email) error {
	m.Logger().Info("mail.sent",
		zap.String("kind", "mail"),
		zap.String("to", e.To),
		zap.String("subject", e.Subject),
		zap.String("body", e.Body),
	)
	return nil
}

// notify sends e and reports failures to the log only.
func notify(ctx context.Context, m Mailer, logger func() *zap.Logger, e Email) {
	if m == nil {
		return
	}
	if err := m.Send(ctx, e); err != nil {
		logger().Warn("mail.failed", zap.String("to", e.To), zap.Error(err))
	}
}
