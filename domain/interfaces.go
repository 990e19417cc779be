package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Count(ctx context.Context) (int64, error)
}

// StudentRepository defines student tuition-table access operations
type StudentRepository interface {
	Create(ctx context.Context, student *Student) error
	FindByID(ctx context.Context, studentID string) (*Student, error)
	Count(ctx context.Context) (int64, error)
}

// PaymentRepository stores payment reservations and owns the
// per-(user, student) reservation gate.
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, paymentID string) (*Payment, error)
	Update(ctx context.Context, payment *Payment) error
	// AcquireGate atomically claims the single-in-flight slot for the
	// (userID, studentID) pair. Returns false when already held.
	AcquireGate(ctx context.Context, userID, studentID string, ttl time.Duration) (bool, error)
	ReleaseGate(ctx context.Context, userID, studentID string) error
}

// OTPRepository stores the at-most-one challenge per payment
type OTPRepository interface {
	Save(ctx context.Context, challenge *OTPChallenge) error
	FindByPaymentID(ctx context.Context, paymentID string) (*OTPChallenge, error)
	Delete(ctx context.Context, paymentID string) error
}

// SettlementStore commits the settlement-time database mutation. The
// conditional balance debit and the semester flips succeed or fail as one
// transaction, so the balance is never debited without the semesters
// marked paid, and vice versa.
type SettlementStore interface {
	// DebitAndMarkPaid debits amount from the user and marks the given
	// semesters of the student paid, returning the new balance. Returns
	// ErrInsufficientBalance (leaving everything untouched) when the
	// balance does not cover the amount.
	DebitAndMarkPaid(ctx context.Context, userID string, amount int64, studentID string, semesterIDs []string) (int64, error)
}

// TransactionRepository is the append-only settlement ledger
type TransactionRepository interface {
	Append(ctx context.Context, txn *Transaction) error
	FindByID(ctx context.Context, txnID string) (*Transaction, error)
	FindByUserID(ctx context.Context, userID string) ([]*Transaction, error)
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// TuitionService resolves a student's outstanding tuition
type TuitionService interface {
	GetTuition(ctx context.Context, studentID string) (*TuitionStatement, error)
}

// PaymentService reserves and cancels tuition payments
type PaymentService interface {
	Reserve(ctx context.Context, userID, studentID, studentName string, debtSemesters []SemesterTuition) (*Payment, error)
	Cancel(ctx context.Context, paymentID string) error
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
}

// OTPService issues and verifies challenges bound to a payment
type OTPService interface {
	Issue(ctx context.Context, paymentID string) (*OTPChallenge, error)
	Verify(ctx context.Context, paymentID, code string) error
	Resend(ctx context.Context, paymentID string) (*OTPChallenge, error)
}

// SettlementService commits verified payments to the ledger
type SettlementService interface {
	Settle(ctx context.Context, paymentID string) (*Transaction, error)
	GetTransaction(ctx context.Context, txnID string) (*Transaction, error)
	History(ctx context.Context, userID string) ([]*Transaction, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserProfile(ctx context.Context, userID string) (*User, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID, role, sessionID string) (string, error)
	GenerateRefreshToken(userID, role, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService delivers one-time codes to the payer
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
