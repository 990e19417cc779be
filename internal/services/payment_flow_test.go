package services

import (
	"context"
	"errors"
	"testing"

	"github.com/you/tuitionsvc/domain"
	"github.com/you/tuitionsvc/internal/mocks"
)

type flowTestEnv struct {
	flow          *PaymentFlow
	tuitionSvc    *mocks.MockTuitionService
	paymentSvc    *mocks.MockPaymentService
	otpSvc        *mocks.MockOTPService
	settlementSvc *mocks.MockSettlementService
	cancelled     []string
}

func newFlowForTest(t *testing.T) *flowTestEnv {
	t.Helper()

	env := &flowTestEnv{
		tuitionSvc:    mocks.NewMockTuitionService(),
		paymentSvc:    mocks.NewMockPaymentService(),
		otpSvc:        mocks.NewMockOTPService(),
		settlementSvc: mocks.NewMockSettlementService(),
	}

	student := createTestStudent(t)
	env.tuitionSvc.GetTuitionFunc = func(ctx context.Context, studentID string) (*domain.TuitionStatement, error) {
		if studentID != student.StudentID {
			return nil, domain.ErrStudentNotFound
		}
		return &domain.TuitionStatement{
			Student:       student,
			Outstanding:   student.Outstanding(),
			DebtSemesters: student.DebtSemesters(),
		}, nil
	}
	env.paymentSvc.CancelFunc = func(ctx context.Context, paymentID string) error {
		env.cancelled = append(env.cancelled, paymentID)
		return nil
	}

	env.flow = NewPaymentFlow(env.tuitionSvc, env.paymentSvc, env.otpSvc, env.settlementSvc)
	return env
}

func submitFlow(t *testing.T, env *flowTestEnv) *domain.Payment {
	t.Helper()

	payment, err := env.flow.Submit(createTestContext(t), "user2", "SV005")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if env.flow.State() != FlowAwaitingOTP {
		t.Fatalf("state = %v, want %v", env.flow.State(), FlowAwaitingOTP)
	}
	return payment
}

func TestPaymentFlow_SubmitMovesToAwaitingOTP(t *testing.T) {
	env := newFlowForTest(t)

	if env.flow.State() != FlowForm {
		t.Fatalf("initial state = %v, want %v", env.flow.State(), FlowForm)
	}

	payment := submitFlow(t, env)
	if payment.StudentID != "SV005" || payment.Amount != 8000000 {
		t.Errorf("payment = %+v", payment)
	}
	if env.flow.Payment() == nil {
		t.Error("expected the in-flight payment to be tracked")
	}
}

func TestPaymentFlow_SubmitRollsBackWhenIssueFails(t *testing.T) {
	env := newFlowForTest(t)
	env.otpSvc.IssueFunc = func(ctx context.Context, paymentID string) (*domain.OTPChallenge, error) {
		return nil, errors.New("sms provider down")
	}

	_, err := env.flow.Submit(createTestContext(t), "user2", "SV005")
	if err == nil {
		t.Fatal("expected Submit() to fail")
	}
	if env.flow.State() != FlowForm {
		t.Errorf("state = %v, want back in %v", env.flow.State(), FlowForm)
	}
	if len(env.cancelled) != 1 {
		t.Error("expected the reservation to be cancelled so the gate is freed")
	}
}

func TestPaymentFlow_VerifyTransitions(t *testing.T) {
	tests := []struct {
		name      string
		verifyErr error
		settleErr error
		wantState FlowState
		wantErrIs error
		wantTxn   bool
	}{
		{
			name:      "correct code settles and finishes",
			wantState: FlowSuccess,
			wantTxn:   true,
		},
		{
			name:      "expired code keeps the flow waiting",
			verifyErr: domain.ErrOTPExpired,
			wantState: FlowAwaitingOTP,
			wantErrIs: domain.ErrOTPExpired,
		},
		{
			name:      "wrong code keeps the flow waiting",
			verifyErr: &domain.InvalidCodeError{Remaining: 2},
			wantState: FlowAwaitingOTP,
			wantErrIs: domain.ErrOTPInvalid,
		},
		{
			name:      "max attempts drops back to form",
			verifyErr: domain.ErrOTPMaxAttempts,
			wantState: FlowForm,
			wantErrIs: domain.ErrOTPMaxAttempts,
		},
		{
			name:      "settlement shortfall drops back to form",
			settleErr: &domain.InsufficientBalanceError{Required: 8000000, Available: 1000000},
			wantState: FlowForm,
			wantErrIs: domain.ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newFlowForTest(t)
			submitFlow(t, env)

			env.otpSvc.VerifyFunc = func(ctx context.Context, paymentID, code string) error {
				return tt.verifyErr
			}
			if tt.settleErr != nil {
				env.settlementSvc.SettleFunc = func(ctx context.Context, paymentID string) (*domain.Transaction, error) {
					return nil, tt.settleErr
				}
			}

			txn, err := env.flow.Verify(createTestContext(t), "123456")

			if tt.wantErrIs != nil && !errors.Is(err, tt.wantErrIs) {
				t.Fatalf("Verify() error = %v, want %v", err, tt.wantErrIs)
			}
			if tt.wantTxn && (err != nil || txn == nil) {
				t.Fatalf("Verify() = (%v, %v), want a transaction", txn, err)
			}
			if env.flow.State() != tt.wantState {
				t.Errorf("state = %v, want %v", env.flow.State(), tt.wantState)
			}
		})
	}
}

func TestPaymentFlow_CancelReturnsToForm(t *testing.T) {
	env := newFlowForTest(t)
	payment := submitFlow(t, env)

	if err := env.flow.Cancel(createTestContext(t)); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if env.flow.State() != FlowForm {
		t.Errorf("state = %v, want %v", env.flow.State(), FlowForm)
	}
	if len(env.cancelled) != 1 || env.cancelled[0] != payment.ID {
		t.Errorf("cancelled = %v, want [%s]", env.cancelled, payment.ID)
	}

	// A fresh submission is allowed after cancelling.
	submitFlow(t, env)
}

func TestPaymentFlow_InvalidTransitions(t *testing.T) {
	env := newFlowForTest(t)
	ctx := createTestContext(t)

	if _, err := env.flow.Verify(ctx, "123456"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Verify() in form error = %v, want %v", err, ErrInvalidTransition)
	}
	if _, err := env.flow.Resend(ctx); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Resend() in form error = %v, want %v", err, ErrInvalidTransition)
	}
	if err := env.flow.Cancel(ctx); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Cancel() in form error = %v, want %v", err, ErrInvalidTransition)
	}

	submitFlow(t, env)
	if _, err := env.flow.Submit(ctx, "user2", "SV005"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Submit() while awaiting error = %v, want %v", err, ErrInvalidTransition)
	}

	// Success is terminal for the flow instance.
	if _, err := env.flow.Verify(ctx, "123456"); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if _, err := env.flow.Verify(ctx, "123456"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Verify() after success error = %v, want %v", err, ErrInvalidTransition)
	}
}
