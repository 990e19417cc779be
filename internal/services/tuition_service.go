package services

import (
	"context"

	"github.com/you/tuitionsvc/domain"
)

// TuitionServiceImpl implements domain.TuitionService. Pure read: it never
// mutates the student's tuition table.
type TuitionServiceImpl struct {
	studentRepo domain.StudentRepository
}

// NewTuitionService creates a new tuition resolver
func NewTuitionService(studentRepo domain.StudentRepository) domain.TuitionService {
	return &TuitionServiceImpl{studentRepo: studentRepo}
}

// GetTuition implements domain.TuitionService. The returned statement
// carries the debt-semester snapshot the caller passes to Reserve, so the
// set being paid is fixed at lookup time.
func (s *TuitionServiceImpl) GetTuition(ctx context.Context, studentID string) (*domain.TuitionStatement, error) {
	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &domain.TuitionStatement{
		Student:       student,
		Outstanding:   student.Outstanding(),
		DebtSemesters: student.DebtSemesters(),
	}, nil
}
