package services

import (
	"context"
	"errors"
	"sync"

	"github.com/you/tuitionsvc/domain"
)

// FlowState is one step of a payer's payment attempt
type FlowState string

const (
	FlowForm        FlowState = "form"
	FlowAwaitingOTP FlowState = "awaiting_otp"
	FlowSuccess     FlowState = "success"
)

// ErrInvalidTransition is returned when an operation is called in a flow
// state that does not permit it.
var ErrInvalidTransition = errors.New("operation not allowed in current flow state")

// PaymentFlow drives one payment attempt through form, awaiting_otp and
// success. One instance exists per attempt; Success is terminal, and a
// new attempt starts a fresh flow. A max-attempts rejection or a
// settlement failure drops the flow back to form with the payment already
// cancelled or failed underneath it.
type PaymentFlow struct {
	tuitionSvc    domain.TuitionService
	paymentSvc    domain.PaymentService
	otpSvc        domain.OTPService
	settlementSvc domain.SettlementService

	mu      sync.Mutex
	state   FlowState
	payment *domain.Payment
}

// NewPaymentFlow creates a flow in the form state
func NewPaymentFlow(
	tuitionSvc domain.TuitionService,
	paymentSvc domain.PaymentService,
	otpSvc domain.OTPService,
	settlementSvc domain.SettlementService,
) *PaymentFlow {
	return &PaymentFlow{
		tuitionSvc:    tuitionSvc,
		paymentSvc:    paymentSvc,
		otpSvc:        otpSvc,
		settlementSvc: settlementSvc,
		state:         FlowForm,
	}
}

// State returns the current flow state
func (f *PaymentFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Payment returns the in-flight payment, nil outside awaiting_otp
func (f *PaymentFlow) Payment() *domain.Payment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payment
}

// Submit moves form -> awaiting_otp: resolves the student's debt, reserves
// the payment and issues the first code. A reservation that cannot get its
// code is rolled back so the gate is not left held.
func (f *PaymentFlow) Submit(ctx context.Context, userID, studentID string) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FlowForm {
		return nil, ErrInvalidTransition
	}

	statement, err := f.tuitionSvc.GetTuition(ctx, studentID)
	if err != nil {
		return nil, err
	}

	payment, err := f.paymentSvc.Reserve(ctx, userID, studentID, statement.Student.StudentName, statement.DebtSemesters)
	if err != nil {
		return nil, err
	}

	if _, err := f.otpSvc.Issue(ctx, payment.ID); err != nil {
		f.paymentSvc.Cancel(ctx, payment.ID)
		return nil, err
	}

	f.state = FlowAwaitingOTP
	f.payment = payment
	return payment, nil
}

// Verify moves awaiting_otp -> success on a correct code by settling the
// payment. An expired or wrong code keeps the flow in awaiting_otp; a
// max-attempts rejection or a settlement failure returns it to form.
func (f *PaymentFlow) Verify(ctx context.Context, code string) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FlowAwaitingOTP {
		return nil, ErrInvalidTransition
	}

	if err := f.otpSvc.Verify(ctx, f.payment.ID, code); err != nil {
		if errors.Is(err, domain.ErrOTPMaxAttempts) {
			f.state = FlowForm
			f.payment = nil
		}
		return nil, err
	}

	txn, err := f.settlementSvc.Settle(ctx, f.payment.ID)
	if err != nil {
		f.state = FlowForm
		f.payment = nil
		return nil, err
	}

	f.state = FlowSuccess
	return txn, nil
}

// Resend issues a replacement code; only valid while awaiting a code
func (f *PaymentFlow) Resend(ctx context.Context) (*domain.OTPChallenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FlowAwaitingOTP {
		return nil, ErrInvalidTransition
	}
	return f.otpSvc.Resend(ctx, f.payment.ID)
}

// Cancel abandons the in-flight payment and returns the flow to form
func (f *PaymentFlow) Cancel(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FlowAwaitingOTP {
		return ErrInvalidTransition
	}
	if err := f.paymentSvc.Cancel(ctx, f.payment.ID); err != nil {
		return err
	}

	f.state = FlowForm
	f.payment = nil
	return nil
}
