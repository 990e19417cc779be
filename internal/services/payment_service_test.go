package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/you/tuitionsvc/domain"
	"github.com/you/tuitionsvc/internal/mocks"
)

func newPaymentServiceForTest(t *testing.T, paymentRepo *mocks.MockPaymentRepository, otpRepo *mocks.MockOTPRepository, userRepo *mocks.MockUserRepository) (domain.PaymentService, *mocks.MockAuditLogger) {
	t.Helper()

	if paymentRepo == nil {
		paymentRepo = mocks.NewMockPaymentRepository()
	}
	if otpRepo == nil {
		otpRepo = mocks.NewMockOTPRepository()
	}
	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	audit := mocks.NewMockAuditLogger()
	return NewPaymentService(paymentRepo, otpRepo, userRepo, audit, time.Hour), audit
}

func TestPaymentServiceImpl_Reserve(t *testing.T) {
	user := createTestUser(t)
	debt := createTestStudent(t).DebtSemesters()

	tests := []struct {
		name          string
		semesters     []domain.SemesterTuition
		setupMocks    func(paymentRepo *mocks.MockPaymentRepository, userRepo *mocks.MockUserRepository)
		expectedError error
	}{
		{
			name:      "successful reservation",
			semesters: debt,
			setupMocks: func(paymentRepo *mocks.MockPaymentRepository, userRepo *mocks.MockUserRepository) {
				userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
					return user, nil
				}
			},
			expectedError: nil,
		},
		{
			name:          "empty debt set",
			semesters:     nil,
			setupMocks:    func(paymentRepo *mocks.MockPaymentRepository, userRepo *mocks.MockUserRepository) {},
			expectedError: domain.ErrNoOutstandingBalance,
		},
		{
			name:      "insufficient balance at reservation",
			semesters: debt,
			setupMocks: func(paymentRepo *mocks.MockPaymentRepository, userRepo *mocks.MockUserRepository) {
				userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
					poor := *user
					poor.Balance = 1000000
					return &poor, nil
				}
			},
			expectedError: domain.ErrInsufficientBalance,
		},
		{
			name:      "gate already held",
			semesters: debt,
			setupMocks: func(paymentRepo *mocks.MockPaymentRepository, userRepo *mocks.MockUserRepository) {
				userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
					return user, nil
				}
				paymentRepo.AcquireGateFunc = func(ctx context.Context, userID, studentID string, ttl time.Duration) (bool, error) {
					return false, nil
				}
			},
			expectedError: domain.ErrPaymentInProgress,
		},
		{
			name:      "unknown user",
			semesters: debt,
			setupMocks: func(paymentRepo *mocks.MockPaymentRepository, userRepo *mocks.MockUserRepository) {
				userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
					return nil, domain.ErrUserNotFound
				}
			},
			expectedError: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paymentRepo := mocks.NewMockPaymentRepository()
			userRepo := mocks.NewMockUserRepository()
			tt.setupMocks(paymentRepo, userRepo)
			svc, _ := newPaymentServiceForTest(t, paymentRepo, nil, userRepo)

			payment, err := svc.Reserve(createTestContext(t), user.ID, "SV005", "Hoang Van E", tt.semesters)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("Reserve() error = %v, want %v", err, tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Fatalf("Reserve() unexpected error = %v", err)
			}
			if payment.Status != domain.PaymentPending || !payment.IsLocked {
				t.Errorf("payment = %+v, want pending and locked", payment)
			}
			if payment.Amount != 8000000 {
				t.Errorf("Amount = %d, want 8000000", payment.Amount)
			}
			if payment.OTPAttempts != 0 {
				t.Errorf("OTPAttempts = %d, want 0", payment.OTPAttempts)
			}
			if len(payment.Semesters) != len(tt.semesters) {
				t.Errorf("snapshot size = %d, want %d", len(payment.Semesters), len(tt.semesters))
			}
		})
	}
}

func TestPaymentServiceImpl_Reserve_InsufficientBalanceDetails(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
		return &domain.User{ID: "user3", Balance: 1000000}, nil
	}
	svc, _ := newPaymentServiceForTest(t, nil, nil, userRepo)

	_, err := svc.Reserve(createTestContext(t), "user3", "SV005", "Hoang Van E", []domain.SemesterTuition{
		{ID: "SV005_2025_S1", Amount: 2000000, Status: domain.SemesterDebt},
	})

	var insufficientErr *domain.InsufficientBalanceError
	if !errors.As(err, &insufficientErr) {
		t.Fatalf("Reserve() error = %v, want InsufficientBalanceError", err)
	}
	if insufficientErr.Required != 2000000 || insufficientErr.Available != 1000000 {
		t.Errorf("error detail = %+v, want required 2000000 available 1000000", insufficientErr)
	}
}

func TestPaymentServiceImpl_Reserve_ReleasesGateOnStoreFailure(t *testing.T) {
	released := false
	paymentRepo := mocks.NewMockPaymentRepository()
	paymentRepo.CreateFunc = func(ctx context.Context, payment *domain.Payment) error {
		return errors.New("redis down")
	}
	paymentRepo.ReleaseGateFunc = func(ctx context.Context, userID, studentID string) error {
		released = true
		return nil
	}
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
		return createTestUser(t), nil
	}
	svc, _ := newPaymentServiceForTest(t, paymentRepo, nil, userRepo)

	_, err := svc.Reserve(createTestContext(t), "user2", "SV005", "Hoang Van E", createTestStudent(t).DebtSemesters())
	if err == nil {
		t.Fatal("expected error when store fails")
	}
	if !released {
		t.Error("expected the gate to be released after a failed store")
	}
}

func TestPaymentServiceImpl_Cancel(t *testing.T) {
	t.Run("cancels a pending payment", func(t *testing.T) {
		paymentRepo := mocks.NewMockPaymentRepository()
		otpRepo := mocks.NewMockOTPRepository()
		payment := createPendingPayment(t)
		store := paymentStore(t, paymentRepo, payment)

		otpDeleted := false
		otpRepo.DeleteFunc = func(ctx context.Context, paymentID string) error {
			otpDeleted = true
			return nil
		}
		gateReleased := false
		paymentRepo.ReleaseGateFunc = func(ctx context.Context, userID, studentID string) error {
			gateReleased = true
			return nil
		}

		svc, audit := newPaymentServiceForTest(t, paymentRepo, otpRepo, nil)
		if err := svc.Cancel(createTestContext(t), payment.ID); err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}

		got := store[payment.ID]
		if got.Status != domain.PaymentCancelled || got.IsLocked {
			t.Errorf("payment = %+v, want cancelled and unlocked", got)
		}
		if !otpDeleted {
			t.Error("expected the bound challenge to be deleted")
		}
		if !gateReleased {
			t.Error("expected the reservation gate to be released")
		}
		if !audit.HasEvent(domain.PaymentCancelledEvent) {
			t.Error("expected a cancellation audit event")
		}
	})

	t.Run("idempotent on terminal payments", func(t *testing.T) {
		paymentRepo := mocks.NewMockPaymentRepository()
		payment := createPendingPayment(t)
		payment.Status = domain.PaymentCancelled
		payment.IsLocked = false
		paymentStore(t, paymentRepo, payment)

		updated := false
		paymentRepo.UpdateFunc = func(ctx context.Context, p *domain.Payment) error {
			updated = true
			return nil
		}

		svc, _ := newPaymentServiceForTest(t, paymentRepo, nil, nil)
		if err := svc.Cancel(createTestContext(t), payment.ID); err != nil {
			t.Fatalf("Cancel() error = %v, want no-op", err)
		}
		if updated {
			t.Error("expected no update for an already-terminal payment")
		}
	})

	t.Run("unknown payment", func(t *testing.T) {
		svc, _ := newPaymentServiceForTest(t, nil, nil, nil)
		err := svc.Cancel(createTestContext(t), "pay_missing")
		if !errors.Is(err, domain.ErrPaymentNotFound) {
			t.Errorf("Cancel() error = %v, want %v", err, domain.ErrPaymentNotFound)
		}
	})
}
