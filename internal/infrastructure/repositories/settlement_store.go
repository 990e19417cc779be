package repositories

import (
	"context"

	"github.com/you/tuitionsvc/domain"
	"gorm.io/gorm"
)

// SettlementStoreImpl implements domain.SettlementStore using GORM. The
// debit and the semester flips live in the same database, so they commit
// in one transaction.
type SettlementStoreImpl struct {
	db *gorm.DB
}

// NewSettlementStore creates a new settlement store
func NewSettlementStore(db *gorm.DB) domain.SettlementStore {
	return &SettlementStoreImpl{db: db}
}

// DebitAndMarkPaid implements domain.SettlementStore. The debit is a
// conditional UPDATE guarded by the current balance; when the guard fails
// the transaction rolls back and nothing is mutated.
func (r *SettlementStoreImpl) DebitAndMarkPaid(ctx context.Context, userID string, amount int64, studentID string, semesterIDs []string) (int64, error) {
	var newBalance int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&DBUser{}).
			Where("id = ? AND balance >= ?", userID, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Either the user is gone or the balance did not cover the amount.
			var dbUser DBUser
			if err := tx.Where("id = ?", userID).First(&dbUser).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return domain.ErrUserNotFound
				}
				return err
			}
			return &domain.InsufficientBalanceError{Required: amount, Available: dbUser.Balance}
		}

		if len(semesterIDs) > 0 {
			if err := tx.Model(&DBSemesterTuition{}).
				Where("student_id = ? AND id IN ?", studentID, semesterIDs).
				Update("status", string(domain.SemesterPaid)).Error; err != nil {
				return err
			}
		}

		var dbUser DBUser
		if err := tx.Where("id = ?", userID).First(&dbUser).Error; err != nil {
			return err
		}
		newBalance = dbUser.Balance
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}
