package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Payment lifecycle events
	PaymentCreatedEvent   AuditEventType = "PAYMENT_CREATED"
	PaymentCancelledEvent AuditEventType = "PAYMENT_CANCELLED"
	PaymentCompletedEvent AuditEventType = "PAYMENT_COMPLETED"
	PaymentFailedEvent    AuditEventType = "PAYMENT_FAILED"

	// OTP events
	OTPIssuedEvent   AuditEventType = "OTP_ISSUED"
	OTPVerifiedEvent AuditEventType = "OTP_VERIFIED"
	OTPRejectedEvent AuditEventType = "OTP_REJECTED"

	// Settlement events
	TransactionSettledEvent AuditEventType = "TRANSACTION_SETTLED"

	// Authentication events
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	UserID    string         `json:"user_id,omitempty"`
	StudentID string         `json:"student_id,omitempty"`
	PaymentID string         `json:"payment_id,omitempty"`
	Amount    int64          `json:"amount,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Success   bool           `json:"success"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
}

// AuditLogger records payment lifecycle events for the permanent trail
type AuditLogger interface {
	LogEvent(event *AuditEvent)
}
