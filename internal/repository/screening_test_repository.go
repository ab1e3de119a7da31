package repository

import (
	"github.com/hackdesk/hackdesk/internal/model"
	"gorm.io/gorm"
)

type ScreeningTestRepository interface {
	Create(test *model.ScreeningTest) error
	Save(test *model.ScreeningTest) error
	FindByID(id uint) (*model.ScreeningTest, error)
	FindActiveByEvent(eventID uint) (*model.ScreeningTest, error)
}

type screeningTestRepository struct {
	db *gorm.DB
}

func NewScreeningTestRepository(db *gorm.DB) ScreeningTestRepository {
	return &screeningTestRepository{db: db}
}

func (r *screeningTestRepository) Create(test *model.ScreeningTest) error {
	return r.db.Create(test).Error
}

func (r *screeningTestRepository) Save(test *model.ScreeningTest) error {
	return r.db.Save(test).Error
}

func (r *screeningTestRepository) FindByID(id uint) (*model.ScreeningTest, error) {
	var test model.ScreeningTest
	if err := r.db.First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *screeningTestRepository) FindActiveByEvent(eventID uint) (*model.ScreeningTest, error) {
	var test model.ScreeningTest
	err := r.db.Where("event_id = ? AND is_active = ?", eventID, true).First(&test).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}
