package repositories

import (
	"context"
	"time"

	"github.com/you/tuitionsvc/domain"
	"gorm.io/gorm"
)

// StudentRepositoryImpl implements domain.StudentRepository using GORM
type StudentRepositoryImpl struct {
	db *gorm.DB
}

// DBStudent represents the database model for Student (with GORM tags)
type DBStudent struct {
	StudentID   string              `gorm:"primaryKey;size:64"`
	StudentName string              `gorm:"size:255"`
	Semesters   []DBSemesterTuition `gorm:"foreignKey:StudentID;references:StudentID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBStudent) TableName() string {
	return "students"
}

// DBSemesterTuition is one tuition line of a student's table. Position
// preserves the order the registrar issued the lines in.
type DBSemesterTuition struct {
	ID         string `gorm:"primaryKey;size:64"`
	StudentID  string `gorm:"index;size:64"`
	Name       string `gorm:"size:64"`
	SchoolYear string `gorm:"size:16"`
	Amount     int64  `gorm:"not null"`
	Status     string `gorm:"index;size:16"`
	Position   int    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DBSemesterTuition) TableName() string {
	return "semester_tuitions"
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) domain.StudentRepository {
	return &StudentRepositoryImpl{db: db}
}

// Create implements domain.StudentRepository
func (r *StudentRepositoryImpl) Create(ctx context.Context, student *domain.Student) error {
	dbStudent := r.domainToDB(student)
	return r.db.WithContext(ctx).Create(dbStudent).Error
}

// FindByID implements domain.StudentRepository
func (r *StudentRepositoryImpl) FindByID(ctx context.Context, studentID string) (*domain.Student, error) {
	var dbStudent DBStudent
	err := r.db.WithContext(ctx).
		Preload("Semesters", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("student_id = ?", studentID).
		First(&dbStudent).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbStudent), nil
}

// Count implements domain.StudentRepository
func (r *StudentRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBStudent{}).Count(&count).Error
	return count, err
}

// domainToDB converts domain student to database student
func (r *StudentRepositoryImpl) domainToDB(student *domain.Student) *DBStudent {
	dbStudent := &DBStudent{
		StudentID:   student.StudentID,
		StudentName: student.StudentName,
	}
	for i, sem := range student.Semesters {
		dbStudent.Semesters = append(dbStudent.Semesters, DBSemesterTuition{
			ID:         sem.ID,
			StudentID:  student.StudentID,
			Name:       sem.Name,
			SchoolYear: sem.SchoolYear,
			Amount:     sem.Amount,
			Status:     string(sem.Status),
			Position:   i,
		})
	}
	return dbStudent
}

// dbToDomain converts database student to domain student
func (r *StudentRepositoryImpl) dbToDomain(dbStudent *DBStudent) *domain.Student {
	student := &domain.Student{
		StudentID:   dbStudent.StudentID,
		StudentName: dbStudent.StudentName,
	}
	for _, sem := range dbStudent.Semesters {
		student.Semesters = append(student.Semesters, domain.SemesterTuition{
			ID:         sem.ID,
			Name:       sem.Name,
			SchoolYear: sem.SchoolYear,
			Amount:     sem.Amount,
			Status:     domain.SemesterStatus(sem.Status),
		})
	}
	return student
}
