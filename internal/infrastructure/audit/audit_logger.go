package audit

import (
	"time"

	"github.com/you/tuitionsvc/domain"
	"go.uber.org/zap"
)

// ZapAuditLogger implements domain.AuditLogger with structured zap output.
// Every payment lifecycle event lands in the log stream as one record, so
// the trail can be shipped to whatever the operators aggregate logs with.
type ZapAuditLogger struct {
	logger *zap.Logger
}

// NewZapAuditLogger creates an audit logger writing through zap
func NewZapAuditLogger(logger *zap.Logger) domain.AuditLogger {
	return &ZapAuditLogger{logger: logger.Named("audit")}
}

// LogEvent implements domain.AuditLogger
func (l *ZapAuditLogger) LogEvent(event *domain.AuditEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	fields := []zap.Field{
		zap.String("event_type", string(event.EventType)),
		zap.Time("timestamp", event.Timestamp),
		zap.Bool("success", event.Success),
	}
	if event.UserID != "" {
		fields = append(fields, zap.String("user_id", event.UserID))
	}
	if event.StudentID != "" {
		fields = append(fields, zap.String("student_id", event.StudentID))
	}
	if event.PaymentID != "" {
		fields = append(fields, zap.String("payment_id", event.PaymentID))
	}
	if event.Amount != 0 {
		fields = append(fields, zap.Int64("amount", event.Amount))
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error", event.ErrorMsg))
	}

	if event.Success {
		l.logger.Info("audit event", fields...)
	} else {
		l.logger.Warn("audit event", fields...)
	}
}

// NopAuditLogger discards events. Used in tests.
type NopAuditLogger struct{}

// LogEvent implements domain.AuditLogger
func (NopAuditLogger) LogEvent(*domain.AuditEvent) {}
