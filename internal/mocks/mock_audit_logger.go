package mocks

import "github.com/you/tuitionsvc/domain"

// MockAuditLogger implements domain.AuditLogger and records every event
// so tests can assert on the trail.
type MockAuditLogger struct {
	Events []*domain.AuditEvent
}

// NewMockAuditLogger creates a new MockAuditLogger
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// LogEvent records the event
func (m *MockAuditLogger) LogEvent(event *domain.AuditEvent) {
	m.Events = append(m.Events, event)
}

// HasEvent reports whether an event of the given type was recorded
func (m *MockAuditLogger) HasEvent(eventType domain.AuditEventType) bool {
	for _, e := range m.Events {
		if e.EventType == eventType {
			return true
		}
	}
	return false
}

// Verify interface compliance at compile time
var _ domain.AuditLogger = (*MockAuditLogger)(nil)
