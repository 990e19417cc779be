package services

import (
	"context"
	"errors"
	"testing"

	"github.com/you/tuitionsvc/domain"
	"github.com/you/tuitionsvc/internal/mocks"
)

func TestTuitionServiceImpl_GetTuition(t *testing.T) {
	t.Run("resolves outstanding and debt snapshot", func(t *testing.T) {
		studentRepo := mocks.NewMockStudentRepository()
		studentRepo.FindByIDFunc = func(ctx context.Context, studentID string) (*domain.Student, error) {
			return createTestStudent(t), nil
		}
		svc := NewTuitionService(studentRepo)

		statement, err := svc.GetTuition(createTestContext(t), "SV005")
		if err != nil {
			t.Fatalf("GetTuition() error = %v", err)
		}

		if statement.Outstanding != 8000000 {
			t.Errorf("Outstanding = %d, want 8000000", statement.Outstanding)
		}
		if len(statement.DebtSemesters) != 2 {
			t.Fatalf("len(DebtSemesters) = %d, want 2", len(statement.DebtSemesters))
		}
		// Paid semesters never enter the snapshot.
		for _, sem := range statement.DebtSemesters {
			if sem.Status != domain.SemesterDebt {
				t.Errorf("semester %s status = %v, want debt", sem.ID, sem.Status)
			}
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		svc := NewTuitionService(mocks.NewMockStudentRepository())
		_, err := svc.GetTuition(createTestContext(t), "SV999")
		if !errors.Is(err, domain.ErrStudentNotFound) {
			t.Errorf("GetTuition() error = %v, want %v", err, domain.ErrStudentNotFound)
		}
	})
}
