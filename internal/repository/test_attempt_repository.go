package repository

import (
	"github.com/hackdesk/hackdesk/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestAttemptRepository interface {
	Create(attempt *model.TestAttempt) error
	// Upsert writes the attempt keyed on (user_id, test_id); a resubmission
	// overwrites the stored answers and score instead of adding a row.
	Upsert(attempt *model.TestAttempt) error
	FindByUserAndTest(userID, testID uint) (*model.TestAttempt, error)
	FindByID(id uint) (*model.TestAttempt, error)
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func (r *testAttemptRepository) Create(attempt *model.TestAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *testAttemptRepository) Upsert(attempt *model.TestAttempt) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "test_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"answers", "score", "total_questions", "time_taken_seconds",
			"tab_switches", "status", "submitted_at", "updated_at",
		}),
	}).Create(attempt).Error
}

func (r *testAttemptRepository) FindByUserAndTest(userID, testID uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.Where("user_id = ? AND test_id = ?", userID, testID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindByID(id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}
