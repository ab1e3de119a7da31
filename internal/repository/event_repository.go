package repository

import (
	"github.com/hackdesk/hackdesk/internal/model"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(event *model.Event) error
	Save(event *model.Event) error
	FindByID(id uint) (*model.Event, error)
	FindPublished() ([]model.Event, error)
	CountRegistrations(eventID uint) (int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(event *model.Event) error {
	return r.db.Create(event).Error
}

func (r *eventRepository) Save(event *model.Event) error {
	return r.db.Save(event).Error
}

func (r *eventRepository) FindByID(id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindPublished() ([]model.Event, error) {
	var events []model.Event
	err := r.db.Where("is_published = ?", true).Order("starts_at ASC").Find(&events).Error
	return events, err
}

func (r *eventRepository) CountRegistrations(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Registration{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}
