package notifications

import (
	"github.com/you/tuitionsvc/domain"
	"go.uber.org/zap"
)

// ConsoleServiceImpl implements domain.NotificationService by logging the
// message instead of delivering it. Used in local development and demos
// where no SMS provider is configured.
type ConsoleServiceImpl struct {
	logger *zap.Logger
}

// NewConsoleService creates a notification service that logs deliveries
func NewConsoleService(logger *zap.Logger) domain.NotificationService {
	return &ConsoleServiceImpl{logger: logger}
}

// SendSMS implements domain.NotificationService
func (c *ConsoleServiceImpl) SendSMS(to, message string) error {
	c.logger.Info("sms delivery",
		zap.String("to", to),
		zap.String("message", message),
	)
	return nil
}

// SendEmail implements domain.NotificationService
func (c *ConsoleServiceImpl) SendEmail(to, subject, body string) error {
	c.logger.Info("email delivery",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
