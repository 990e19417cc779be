package mocks

import "github.com/you/tuitionsvc/domain"

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendSMSFunc   func(to, message string) error
	SendEmailFunc func(to, subject, body string) error

	// SentSMS records every SMS delivery for assertions
	SentSMS []struct{ To, Message string }
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS delivers a text message
func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	// Default behavior: record and succeed
	m.SentSMS = append(m.SentSMS, struct{ To, Message string }{to, message})
	return nil
}

// SendEmail delivers an email
func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	return nil
}

// Verify interface compliance at compile time
var _ domain.NotificationService = (*MockNotificationService)(nil)
