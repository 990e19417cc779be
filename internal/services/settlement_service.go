package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/you/tuitionsvc/domain"
	"go.uber.org/zap"
)

// SettlementServiceImpl implements domain.SettlementService. The balance
// is re-checked at settlement time through a conditional debit: funds may
// have moved between reservation and settlement, and the debit is the
// authoritative check, not the earlier precheck. The debit and the
// semester flips commit in one database transaction.
type SettlementServiceImpl struct {
	paymentRepo domain.PaymentRepository
	store       domain.SettlementStore
	studentRepo domain.StudentRepository
	txnRepo     domain.TransactionRepository
	auditLogger domain.AuditLogger
	logger      *zap.Logger
}

// NewSettlementService creates a new settlement engine
func NewSettlementService(
	paymentRepo domain.PaymentRepository,
	store domain.SettlementStore,
	studentRepo domain.StudentRepository,
	txnRepo domain.TransactionRepository,
	auditLogger domain.AuditLogger,
	logger *zap.Logger,
) domain.SettlementService {
	return &SettlementServiceImpl{
		paymentRepo: paymentRepo,
		store:       store,
		studentRepo: studentRepo,
		txnRepo:     txnRepo,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// Settle implements domain.SettlementService. The caller sequences this
// after a successful code verification. On an insufficient balance the
// payment is marked failed and no ledger entry is written. Once the debit
// has committed, any later failure also marks the payment failed: a
// pending payment whose debit already happened would let a retry debit
// the user a second time.
func (s *SettlementServiceImpl) Settle(ctx context.Context, paymentID string) (*domain.Transaction, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentPending {
		return nil, domain.ErrPaymentNotPending
	}

	semesterIDs := make([]string, len(payment.Semesters))
	for i, sem := range payment.Semesters {
		semesterIDs[i] = sem.ID
	}

	// The conditional debit is the commit point: it only succeeds when the
	// balance still covers the amount, and the semester flips ride in the
	// same transaction.
	newBalance, err := s.store.DebitAndMarkPaid(ctx, payment.UserID, payment.Amount, payment.StudentID, semesterIDs)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			return nil, s.failPayment(ctx, payment, err)
		}
		return nil, fmt.Errorf("failed to debit balance: %w", err)
	}

	paidSnapshot := make([]domain.SemesterTuition, len(payment.Semesters))
	for i, sem := range payment.Semesters {
		sem.Status = domain.SemesterPaid
		paidSnapshot[i] = sem
	}

	txn := &domain.Transaction{
		ID:          "txn_" + uuid.NewString(),
		PaymentID:   payment.ID,
		UserID:      payment.UserID,
		StudentID:   payment.StudentID,
		StudentName: payment.StudentName,
		Amount:      payment.Amount,
		Status:      domain.TransactionSuccess,
		CreatedAt:   time.Now(),
		Semesters:   paidSnapshot,
	}
	if err := s.txnRepo.Append(ctx, txn); err != nil {
		// The debit has committed; the payment must leave pending or a
		// retried Settle would debit again.
		return nil, s.failPayment(ctx, payment, fmt.Errorf("failed to append transaction: %w", err))
	}

	payment.Status = domain.PaymentCompleted
	payment.IsLocked = false
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, s.failPayment(ctx, payment, fmt.Errorf("failed to complete payment: %w", err))
	}
	if err := s.paymentRepo.ReleaseGate(ctx, payment.UserID, payment.StudentID); err != nil {
		return nil, fmt.Errorf("failed to release reservation gate: %w", err)
	}

	if student, err := s.studentRepo.FindByID(ctx, payment.StudentID); err == nil {
		s.logger.Info("settlement complete",
			zap.String("payment_id", payment.ID),
			zap.String("transaction_id", txn.ID),
			zap.String("student_id", student.StudentID),
			zap.Int64("amount", payment.Amount),
			zap.Int64("new_balance", newBalance),
			zap.Int64("outstanding", student.Outstanding()),
		)
	}

	s.auditLogger.LogEvent(&domain.AuditEvent{
		EventType: domain.TransactionSettledEvent,
		UserID:    payment.UserID,
		StudentID: payment.StudentID,
		PaymentID: payment.ID,
		Amount:    payment.Amount,
		Success:   true,
	})

	return txn, nil
}

// failPayment marks the payment failed and propagates the original error.
// Retries then stop at the pending check instead of reaching the debit.
func (s *SettlementServiceImpl) failPayment(ctx context.Context, payment *domain.Payment, cause error) error {
	payment.Status = domain.PaymentFailed
	payment.IsLocked = false
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return fmt.Errorf("failed to mark payment failed: %w", err)
	}
	if err := s.paymentRepo.ReleaseGate(ctx, payment.UserID, payment.StudentID); err != nil {
		return fmt.Errorf("failed to release reservation gate: %w", err)
	}

	s.auditLogger.LogEvent(&domain.AuditEvent{
		EventType: domain.PaymentFailedEvent,
		UserID:    payment.UserID,
		StudentID: payment.StudentID,
		PaymentID: payment.ID,
		Amount:    payment.Amount,
		Success:   false,
		ErrorMsg:  cause.Error(),
	})

	return cause
}

// GetTransaction implements domain.SettlementService
func (s *SettlementServiceImpl) GetTransaction(ctx context.Context, txnID string) (*domain.Transaction, error) {
	return s.txnRepo.FindByID(ctx, txnID)
}

// History implements domain.SettlementService
func (s *SettlementServiceImpl) History(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	return s.txnRepo.FindByUserID(ctx, userID)
}
