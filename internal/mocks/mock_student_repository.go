package mocks

import (
	"context"

	"github.com/you/tuitionsvc/domain"
)

// MockStudentRepository implements domain.StudentRepository interface for testing
type MockStudentRepository struct {
	CreateFunc   func(ctx context.Context, student *domain.Student) error
	FindByIDFunc func(ctx context.Context, studentID string) (*domain.Student, error)
	CountFunc    func(ctx context.Context) (int64, error)
}

// NewMockStudentRepository creates a new MockStudentRepository with default behaviors
func NewMockStudentRepository() *MockStudentRepository {
	return &MockStudentRepository{}
}

// Create creates a new student
func (m *MockStudentRepository) Create(ctx context.Context, student *domain.Student) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, student)
	}
	return nil
}

// FindByID finds a student by ID
func (m *MockStudentRepository) FindByID(ctx context.Context, studentID string) (*domain.Student, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, studentID)
	}
	// Default behavior: not found
	return nil, domain.ErrStudentNotFound
}

// Count counts stored students
func (m *MockStudentRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// Verify interface compliance at compile time
var _ domain.StudentRepository = (*MockStudentRepository)(nil)
