package domain

import "time"

// User represents a paying account holder
type User struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	Email        string
	Phone        string
	Role         string
	Balance      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SemesterStatus is the payment state of a single semester tuition entry
type SemesterStatus string

const (
	SemesterDebt SemesterStatus = "debt"
	SemesterPaid SemesterStatus = "paid"
)

// SemesterTuition is one semester's tuition line for a student.
// Status is monotonic: once paid it never reverts to debt.
type SemesterTuition struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	SchoolYear string         `json:"schoolYear"`
	Amount     int64          `json:"amount"`
	Status     SemesterStatus `json:"status"`
}

// Student owns a set of semester tuition entries
type Student struct {
	StudentID   string            `json:"studentId"`
	StudentName string            `json:"studentName"`
	Semesters   []SemesterTuition `json:"semesters"`
}

// DebtSemesters returns the semesters still carrying debt, in table order
func (s *Student) DebtSemesters() []SemesterTuition {
	var debt []SemesterTuition
	for _, sem := range s.Semesters {
		if sem.Status == SemesterDebt {
			debt = append(debt, sem)
		}
	}
	return debt
}

// Outstanding returns the total amount still owed across all semesters
func (s *Student) Outstanding() int64 {
	var total int64
	for _, sem := range s.Semesters {
		if sem.Status == SemesterDebt {
			total += sem.Amount
		}
	}
	return total
}

// TuitionStatement is the resolver's answer for one student lookup
type TuitionStatement struct {
	Student       *Student
	Outstanding   int64
	DebtSemesters []SemesterTuition
}

// PaymentStatus is the lifecycle state of a payment reservation
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment reserves a student's outstanding tuition for one user.
// Semesters is the debt snapshot taken at reservation time; settlement pays
// exactly this set even if the student's tuition table changes mid-flow.
type Payment struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	StudentID   string            `json:"studentId"`
	StudentName string            `json:"studentName"`
	Amount      int64             `json:"amount"`
	Status      PaymentStatus     `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	OTPAttempts int               `json:"otpAttempts"`
	IsLocked    bool              `json:"isLocked"`
	Semesters   []SemesterTuition `json:"semesters"`
}

// IsTerminal reports whether the payment can no longer change state
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentCompleted || p.Status == PaymentCancelled || p.Status == PaymentFailed
}

// OTPChallenge is the one-time code bound to a payment. At most one
// challenge exists per payment; reissuing replaces it.
type OTPChallenge struct {
	Code      string    `json:"code"`
	PaymentID string    `json:"paymentId"`
	ExpiresAt time.Time `json:"expiresAt"`
	Attempts  int       `json:"attempts"`
	IsExpired bool      `json:"isExpired"`
}

// TransactionStatus is the outcome recorded on the ledger
type TransactionStatus string

const (
	TransactionSuccess TransactionStatus = "success"
	TransactionFailed  TransactionStatus = "failed"
)

// Transaction is an append-only ledger entry for a settled payment.
// Semesters holds the post-settlement snapshot (all paid). Never mutated.
type Transaction struct {
	ID          string            `json:"id"`
	PaymentID   string            `json:"paymentId"`
	UserID      string            `json:"userId"`
	StudentID   string            `json:"studentId"`
	StudentName string            `json:"studentName"`
	Amount      int64             `json:"amount"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	Semesters   []SemesterTuition `json:"semesters"`
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// Session represents a user session
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
