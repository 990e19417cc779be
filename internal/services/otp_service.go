package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/you/tuitionsvc/domain"
)

// OTPConfig holds one-time code parameters
type OTPConfig struct {
	Length      int
	TTL         time.Duration
	MaxAttempts int
}

// OTPServiceImpl implements domain.OTPService. Each challenge is bound to
// one payment; issuing again replaces the prior challenge and resets the
// attempt counter. Expiry is decided against server time inside Verify.
type OTPServiceImpl struct {
	otpRepo         domain.OTPRepository
	paymentRepo     domain.PaymentRepository
	paymentSvc      domain.PaymentService
	userRepo        domain.UserRepository
	notificationSvc domain.NotificationService
	auditLogger     domain.AuditLogger
	config          OTPConfig
}

// NewOTPService creates a new OTP challenge service
func NewOTPService(
	otpRepo domain.OTPRepository,
	paymentRepo domain.PaymentRepository,
	paymentSvc domain.PaymentService,
	userRepo domain.UserRepository,
	notificationSvc domain.NotificationService,
	auditLogger domain.AuditLogger,
	config OTPConfig,
) domain.OTPService {
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		paymentRepo:     paymentRepo,
		paymentSvc:      paymentSvc,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		auditLogger:     auditLogger,
		config:          config,
	}
}

// Issue implements domain.OTPService
func (s *OTPServiceImpl) Issue(ctx context.Context, paymentID string) (*domain.OTPChallenge, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	// The payer must exist before a challenge is stored: a code nobody can
	// receive would just burn the attempt window.
	user, err := s.userRepo.FindByID(ctx, payment.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payer: %w", err)
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	challenge := &domain.OTPChallenge{
		Code:      code,
		PaymentID: paymentID,
		ExpiresAt: time.Now().Add(s.config.TTL),
	}
	if err := s.otpRepo.Save(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to store OTP challenge: %w", err)
	}

	message := fmt.Sprintf("Your payment verification code is: %s. Valid for %d seconds.", code, int(s.config.TTL.Seconds()))
	if err := s.notificationSvc.SendSMS(user.Phone, message); err != nil {
		s.otpRepo.Delete(ctx, paymentID)
		return nil, fmt.Errorf("failed to send OTP SMS: %w", err)
	}

	s.auditLogger.LogEvent(&domain.AuditEvent{
		EventType: domain.OTPIssuedEvent,
		UserID:    payment.UserID,
		StudentID: payment.StudentID,
		PaymentID: paymentID,
		Success:   true,
	})

	return challenge, nil
}

// Resend implements domain.OTPService. Equivalent to Issue: the new
// challenge replaces the old one with attempts back at zero. No cooldown
// beyond expiry is imposed.
func (s *OTPServiceImpl) Resend(ctx context.Context, paymentID string) (*domain.OTPChallenge, error) {
	return s.Issue(ctx, paymentID)
}

// Verify implements domain.OTPService. The checks run in a fixed order:
// missing challenge, then expiry, then the attempt cap, then the code
// itself. The cap check fires before the code comparison, so a fourth
// submission always cancels the payment regardless of correctness.
func (s *OTPServiceImpl) Verify(ctx context.Context, paymentID, code string) error {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.Status != domain.PaymentPending {
		return domain.ErrPaymentNotPending
	}

	challenge, err := s.otpRepo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return err
	}

	if challenge.IsExpired || time.Now().After(challenge.ExpiresAt) {
		challenge.IsExpired = true
		if err := s.otpRepo.Save(ctx, challenge); err != nil {
			return fmt.Errorf("failed to mark challenge expired: %w", err)
		}
		s.logRejection(payment, domain.ErrOTPExpired.Error())
		return domain.ErrOTPExpired
	}

	if challenge.Attempts >= s.config.MaxAttempts {
		if err := s.paymentSvc.Cancel(ctx, paymentID); err != nil {
			return fmt.Errorf("failed to cancel payment: %w", err)
		}
		s.logRejection(payment, domain.ErrOTPMaxAttempts.Error())
		return domain.ErrOTPMaxAttempts
	}

	if challenge.Code != code {
		challenge.Attempts++
		if err := s.otpRepo.Save(ctx, challenge); err != nil {
			return fmt.Errorf("failed to record failed attempt: %w", err)
		}
		payment.OTPAttempts = challenge.Attempts
		if err := s.paymentRepo.Update(ctx, payment); err != nil {
			return fmt.Errorf("failed to update payment attempts: %w", err)
		}

		if challenge.Attempts >= s.config.MaxAttempts {
			if err := s.paymentSvc.Cancel(ctx, paymentID); err != nil {
				return fmt.Errorf("failed to cancel payment: %w", err)
			}
			s.logRejection(payment, domain.ErrOTPMaxAttempts.Error())
			return domain.ErrOTPMaxAttempts
		}

		remaining := s.config.MaxAttempts - challenge.Attempts
		s.logRejection(payment, domain.ErrOTPInvalid.Error())
		return &domain.InvalidCodeError{Remaining: remaining}
	}

	// Match. The challenge is consumed; the payment itself is settled in
	// a separate step so a verification failure can never leave a
	// half-settled transaction.
	if err := s.otpRepo.Delete(ctx, paymentID); err != nil {
		return fmt.Errorf("failed to consume challenge: %w", err)
	}

	s.auditLogger.LogEvent(&domain.AuditEvent{
		EventType: domain.OTPVerifiedEvent,
		UserID:    payment.UserID,
		StudentID: payment.StudentID,
		PaymentID: paymentID,
		Success:   true,
	})

	return nil
}

func (s *OTPServiceImpl) logRejection(payment *domain.Payment, reason string) {
	s.auditLogger.LogEvent(&domain.AuditEvent{
		EventType: domain.OTPRejectedEvent,
		UserID:    payment.UserID,
		StudentID: payment.StudentID,
		PaymentID: payment.ID,
		Success:   false,
		ErrorMsg:  reason,
	})
}

// generateSecureCode draws a uniformly random code from the full numeric
// range for the configured length, e.g. 100000-999999 for six digits.
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	min := int64(1)
	for i := 1; i < s.config.Length; i++ {
		min *= 10
	}

	n, err := rand.Int(rand.Reader, big.NewInt(9*min))
	if err != nil {
		return "", fmt.Errorf("failed to draw random code: %w", err)
	}

	return strconv.FormatInt(min+n.Int64(), 10), nil
}
