package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/you/tuitionsvc/domain"
)

// PaymentServiceImpl implements domain.PaymentService. At most one payment
// per (user, student) pair may be pending at a time; the redis SETNX gate
// in the payment repository makes the claim atomic, so two concurrent
// Reserve calls can never both pass the scan.
type PaymentServiceImpl struct {
	paymentRepo    domain.PaymentRepository
	otpRepo        domain.OTPRepository
	userRepo       domain.UserRepository
	auditLogger    domain.AuditLogger
	reservationTTL time.Duration
}

// NewPaymentService creates a new payment reservation service
func NewPaymentService(
	paymentRepo domain.PaymentRepository,
	otpRepo domain.OTPRepository,
	userRepo domain.UserRepository,
	auditLogger domain.AuditLogger,
	reservationTTL time.Duration,
) domain.PaymentService {
	return &PaymentServiceImpl{
		paymentRepo:    paymentRepo,
		otpRepo:        otpRepo,
		userRepo:       userRepo,
		auditLogger:    auditLogger,
		reservationTTL: reservationTTL,
	}
}

// Reserve implements domain.PaymentService. The debt-semester snapshot is
// copied into the payment so a later tuition-table change cannot alter
// what this payment settles.
func (s *PaymentServiceImpl) Reserve(ctx context.Context, userID, studentID, studentName string, debtSemesters []domain.SemesterTuition) (*domain.Payment, error) {
	var amount int64
	for _, sem := range debtSemesters {
		amount += sem.Amount
	}
	if len(debtSemesters) == 0 || amount == 0 {
		return nil, domain.ErrNoOutstandingBalance
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Balance < amount {
		return nil, &domain.InsufficientBalanceError{Required: amount, Available: user.Balance}
	}

	acquired, err := s.paymentRepo.AcquireGate(ctx, userID, studentID, s.reservationTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire reservation gate: %w", err)
	}
	if !acquired {
		return nil, domain.ErrPaymentInProgress
	}

	payment := &domain.Payment{
		ID:          "pay_" + uuid.NewString(),
		UserID:      userID,
		StudentID:   studentID,
		StudentName: studentName,
		Amount:      amount,
		Status:      domain.PaymentPending,
		CreatedAt:   time.Now(),
		IsLocked:    true,
		Semesters:   append([]domain.SemesterTuition(nil), debtSemesters...),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		s.paymentRepo.ReleaseGate(ctx, userID, studentID)
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}

	s.auditLogger.LogEvent(&domain.AuditEvent{
		EventType: domain.PaymentCreatedEvent,
		UserID:    userID,
		StudentID: studentID,
		PaymentID: payment.ID,
		Amount:    amount,
		Success:   true,
	})

	return payment, nil
}

// Cancel implements domain.PaymentService. Cancelling a payment that is
// already terminal is a no-op, not an error.
func (s *PaymentServiceImpl) Cancel(ctx context.Context, paymentID string) error {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.IsTerminal() {
		return nil
	}

	payment.Status = domain.PaymentCancelled
	payment.IsLocked = false
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return fmt.Errorf("failed to cancel payment: %w", err)
	}

	if err := s.otpRepo.Delete(ctx, paymentID); err != nil {
		return fmt.Errorf("failed to delete otp challenge: %w", err)
	}
	if err := s.paymentRepo.ReleaseGate(ctx, payment.UserID, payment.StudentID); err != nil {
		return fmt.Errorf("failed to release reservation gate: %w", err)
	}

	s.auditLogger.LogEvent(&domain.AuditEvent{
		EventType: domain.PaymentCancelledEvent,
		UserID:    payment.UserID,
		StudentID: payment.StudentID,
		PaymentID: payment.ID,
		Amount:    payment.Amount,
		Success:   true,
	})

	return nil
}

// GetPayment implements domain.PaymentService
func (s *PaymentServiceImpl) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return s.paymentRepo.FindByID(ctx, paymentID)
}
