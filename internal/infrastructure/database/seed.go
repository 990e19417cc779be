package database

import (
	"context"
	"fmt"
	"log"

	"github.com/you/tuitionsvc/domain"
)

// seedUsers are the demo payer accounts loaded on an empty database
var seedUsers = []struct {
	ID       string
	Username string
	Password string
	FullName string
	Email    string
	Phone    string
	Role     string
	Balance  int64
}{
	{ID: "user1", Username: "john_doe", Password: "123456", FullName: "John Doe", Email: "john.doe@example.com", Phone: "0912345678", Role: "admin", Balance: 1000000000000},
	{ID: "user2", Username: "jane_smith", Password: "password123", FullName: "Jane Smith", Email: "jane.smith@example.com", Phone: "0987654321", Role: "user", Balance: 10000000},
	{ID: "user3", Username: "bob_wilson", Password: "password123", FullName: "Bob Wilson", Email: "bob.wilson@example.com", Phone: "0923456789", Role: "user", Balance: 5000000},
}

func sem(id, name, schoolYear string, amount int64) domain.SemesterTuition {
	return domain.SemesterTuition{
		ID:         id,
		Name:       name,
		SchoolYear: schoolYear,
		Amount:     amount,
		Status:     domain.SemesterDebt,
	}
}

// seedStudents are the demo tuition tables loaded on an empty database
func seedStudents() []domain.Student {
	return []domain.Student{
		{StudentID: "SV001", StudentName: "Nguyen Van A", Semesters: []domain.SemesterTuition{
			sem("SV001_2025_S1", "Semester 1", "2025-2026", 15000000),
			sem("SV001_2025_S2", "Semester 2", "2025-2026", 15000000),
			sem("SV001_2026_S1", "Semester 1", "2026-2027", 15000000),
			sem("SV001_2026_S2", "Semester 2", "2026-2027", 15000000),
			sem("SV001_2027_S1", "Semester 1", "2027-2028", 15000000),
			sem("SV001_2027_S2", "Semester 2", "2027-2028", 15000000),
		}},
		{StudentID: "SV002", StudentName: "Tran Thi B", Semesters: []domain.SemesterTuition{
			sem("SV002_2023_S1", "Semester 1", "2023-2024", 8000000),
			sem("SV002_2023_S2", "Semester 2", "2023-2024", 8000000),
			sem("SV002_2024_S1", "Semester 1", "2024-2025", 9000000),
			sem("SV002_2024_S2", "Semester 2", "2024-2025", 9000000),
			sem("SV002_2025_S1", "Semester 1", "2025-2026", 10000000),
			sem("SV002_2027_S2", "Semester 2", "2027-2028", 12000000),
		}},
		{StudentID: "SV003", StudentName: "Le Van C", Semesters: []domain.SemesterTuition{
			sem("SV003_2023_S1", "Semester 1", "2023-2024", 6000000),
			sem("SV003_2023_S2", "Semester 2", "2023-2024", 6000000),
			sem("SV003_2024_S1", "Semester 1", "2024-2025", 6000000),
			sem("SV003_2024_S2", "Semester 2", "2024-2025", 6000000),
			sem("SV003_2025_S1", "Semester 1", "2025-2026", 6000000),
			sem("SV003_2025_S2", "Semester 2", "2025-2026", 6000000),
			sem("SV003_2026_S1", "Semester 1", "2026-2027", 6000000),
			sem("SV003_2026_S2", "Semester 2", "2026-2027", 6000000),
			sem("SV003_2027_S1", "Semester 1", "2027-2028", 6000000),
			sem("SV003_2027_S2", "Semester 2", "2027-2028", 6000000),
		}},
		{StudentID: "SV004", StudentName: "Pham Thi D", Semesters: []domain.SemesterTuition{
			sem("SV004_2023_S1", "Semester 1", "2023-2024", 15000000),
			sem("SV004_2023_S2", "Semester 2", "2023-2024", 15000000),
			sem("SV004_2026_S1", "Semester 1", "2026-2027", 15000000),
			sem("SV004_2026_S2", "Semester 2", "2026-2027", 15000000),
			sem("SV004_2027_S1", "Semester 1", "2027-2028", 15000000),
			sem("SV004_2027_S2", "Semester 2", "2027-2028", 15000000),
		}},
		{StudentID: "SV005", StudentName: "Hoang Van E", Semesters: []domain.SemesterTuition{
			sem("SV005_2025_S1", "Semester 1", "2025-2026", 4000000),
			sem("SV005_2025_S2", "Semester 2", "2025-2026", 4000000),
			sem("SV005_2026_S1", "Semester 1", "2026-2027", 4000000),
			sem("SV005_2026_S2", "Semester 2", "2026-2027", 4000000),
			sem("SV005_2027_S1", "Semester 1", "2027-2028", 4000000),
			sem("SV005_2027_S2", "Semester 2", "2027-2028", 4000000),
		}},
	}
}

// Seed loads the demo users and student tuition tables when the
// corresponding tables are empty. Existing data is never touched, so the
// seed is safe to run on every boot.
func Seed(ctx context.Context, userRepo domain.UserRepository, studentRepo domain.StudentRepository, passwordSvc domain.PasswordService) error {
	userCount, err := userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount == 0 {
		for _, su := range seedUsers {
			hash, err := passwordSvc.Hash(su.Password)
			if err != nil {
				return fmt.Errorf("failed to hash seed password: %w", err)
			}
			user := &domain.User{
				ID:           su.ID,
				Username:     su.Username,
				PasswordHash: hash,
				FullName:     su.FullName,
				Email:        su.Email,
				Phone:        su.Phone,
				Role:         su.Role,
				Balance:      su.Balance,
			}
			if err := userRepo.Create(ctx, user); err != nil {
				return fmt.Errorf("failed to seed user %s: %w", su.Username, err)
			}
		}
		log.Printf("seed: loaded %d demo users", len(seedUsers))
	}

	studentCount, err := studentRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count students: %w", err)
	}
	if studentCount == 0 {
		students := seedStudents()
		for i := range students {
			if err := studentRepo.Create(ctx, &students[i]); err != nil {
				return fmt.Errorf("failed to seed student %s: %w", students[i].StudentID, err)
			}
		}
		log.Printf("seed: loaded %d demo students", len(students))
	}

	return nil
}
