package repository

import (
	"time"

	"github.com/hackdesk/hackdesk/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkflowTrackingRepository interface {
	TouchScreeningSent(userID, eventID uint, at time.Time) error
	TouchScreeningSubmitted(userID, eventID uint, at time.Time) error
	TouchPresentationSubmitted(userID, eventID uint, at time.Time) error
	FindByUserAndEvent(userID, eventID uint) (*model.WorkflowTracking, error)
}

type workflowTrackingRepository struct {
	db *gorm.DB
}

func NewWorkflowTrackingRepository(db *gorm.DB) WorkflowTrackingRepository {
	return &workflowTrackingRepository{db: db}
}

func (r *workflowTrackingRepository) TouchScreeningSent(userID, eventID uint, at time.Time) error {
	rec := model.WorkflowTracking{UserID: userID, EventID: eventID, ScreeningSentAt: &at}
	return r.touch(&rec, "screening_sent_at", at)
}

func (r *workflowTrackingRepository) TouchScreeningSubmitted(userID, eventID uint, at time.Time) error {
	rec := model.WorkflowTracking{UserID: userID, EventID: eventID, ScreeningSubmittedAt: &at}
	return r.touch(&rec, "screening_submitted_at", at)
}

func (r *workflowTrackingRepository) TouchPresentationSubmitted(userID, eventID uint, at time.Time) error {
	rec := model.WorkflowTracking{UserID: userID, EventID: eventID, PresentationSubmittedAt: &at}
	return r.touch(&rec, "presentation_submitted_at", at)
}

func (r *workflowTrackingRepository) touch(rec *model.WorkflowTracking, column string, at time.Time) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{column: at, "updated_at": time.Now()}),
	}).Create(rec).Error
}

func (r *workflowTrackingRepository) FindByUserAndEvent(userID, eventID uint) (*model.WorkflowTracking, error) {
	var rec model.WorkflowTracking
	err := r.db.Where("user_id = ? AND event_id = ?", userID, eventID).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
