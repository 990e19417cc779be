package mocks

import (
	"context"

	"github.com/you/tuitionsvc/domain"
)

// MockTuitionService implements domain.TuitionService interface for testing
type MockTuitionService struct {
	GetTuitionFunc func(ctx context.Context, studentID string) (*domain.TuitionStatement, error)
}

// NewMockTuitionService creates a new MockTuitionService with default behaviors
func NewMockTuitionService() *MockTuitionService {
	return &MockTuitionService{}
}

// GetTuition resolves a student's outstanding tuition
func (m *MockTuitionService) GetTuition(ctx context.Context, studentID string) (*domain.TuitionStatement, error) {
	if m.GetTuitionFunc != nil {
		return m.GetTuitionFunc(ctx, studentID)
	}
	// Default behavior: not found
	return nil, domain.ErrStudentNotFound
}

// Verify interface compliance at compile time
var _ domain.TuitionService = (*MockTuitionService)(nil)
