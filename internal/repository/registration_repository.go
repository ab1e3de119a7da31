package repository

import (
	"errors"
	"time"

	"github.com/hackdesk/hackdesk/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegistrationRepository interface {
	Create(reg *model.Registration) error
	Save(reg *model.Registration) error
	FindByID(id uint) (*model.Registration, error)
	FindByUserAndEvent(userID, eventID uint) (*model.Registration, error)
	FindByUser(userID uint) ([]model.Registration, error)
	FindByEvent(eventID uint) ([]model.Registration, error)
	FindByIDs(ids []uint) ([]model.Registration, error)

	MarkScreeningSent(eventID uint, ids []uint, testID uint) (int64, error)
	SkipScreening(ids []uint) (int64, error)
	SetAttendance(ids []uint, attended bool) (int64, error)

	FindAwardedByEvent(eventID uint) ([]model.Registration, error)
	// AssignAwardExclusive stamps the award inside a transaction that first
	// locks any existing winner row for the event. When another registration
	// already holds the winner award it is returned and nothing is written.
	AssignAwardExclusive(reg *model.Registration, awardType string, adminID uint, at time.Time) (*model.Registration, error)
	ClearAward(id uint) error
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(reg *model.Registration) error {
	return r.db.Create(reg).Error
}

func (r *registrationRepository) Save(reg *model.Registration) error {
	return r.db.Save(reg).Error
}

func (r *registrationRepository) FindByID(id uint) (*model.Registration, error) {
	var reg model.Registration
	if err := r.db.First(&reg, id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByUserAndEvent(userID, eventID uint) (*model.Registration, error) {
	var reg model.Registration
	err := r.db.Where("user_id = ? AND event_id = ?", userID, eventID).First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByUser(userID uint) ([]model.Registration, error) {
	var regs []model.Registration
	err := r.db.Where("user_id = ?", userID).Order("registered_at DESC").Find(&regs).Error
	return regs, err
}

func (r *registrationRepository) FindByEvent(eventID uint) ([]model.Registration, error) {
	var regs []model.Registration
	err := r.db.Where("event_id = ?", eventID).Order("registered_at ASC").Find(&regs).Error
	return regs, err
}

func (r *registrationRepository) FindByIDs(ids []uint) ([]model.Registration, error) {
	var regs []model.Registration
	err := r.db.Where("id IN ?", ids).Find(&regs).Error
	return regs, err
}

func (r *registrationRepository) MarkScreeningSent(eventID uint, ids []uint, testID uint) (int64, error) {
	res := r.db.Model(&model.Registration{}).
		Where("event_id = ? AND id IN ?", eventID, ids).
		Updates(map[string]interface{}{
			"screening_status":  model.ScreeningSent,
			"screening_test_id": testID,
		})
	return res.RowsAffected, res.Error
}

func (r *registrationRepository) SkipScreening(ids []uint) (int64, error) {
	res := r.db.Model(&model.Registration{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"screening_status":    model.ScreeningSkipped,
			"presentation_status": model.PresentationPending,
		})
	return res.RowsAffected, res.Error
}

func (r *registrationRepository) SetAttendance(ids []uint, attended bool) (int64, error) {
	res := r.db.Model(&model.Registration{}).
		Where("id IN ?", ids).
		Update("attended", attended)
	return res.RowsAffected, res.Error
}

func (r *registrationRepository) FindAwardedByEvent(eventID uint) ([]model.Registration, error) {
	var regs []model.Registration
	err := r.db.
		Where("event_id = ? AND award_type IN ?", eventID, []string{model.AwardWinner, model.AwardRunnerUp}).
		Order("award_assigned_at ASC").
		Find(&regs).Error
	return regs, err
}

func (r *registrationRepository) AssignAwardExclusive(reg *model.Registration, awardType string, adminID uint, at time.Time) (*model.Registration, error) {
	var existing *model.Registration
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if awardType == model.AwardWinner {
			var winner model.Registration
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("event_id = ? AND award_type = ? AND id <> ?", reg.EventID, model.AwardWinner, reg.ID).
				First(&winner).Error
			if err == nil {
				existing = &winner
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		return tx.Model(&model.Registration{}).
			Where("id = ?", reg.ID).
			Updates(map[string]interface{}{
				"award_type":        awardType,
				"award_assigned_at": at,
				"award_assigned_by": adminID,
			}).Error
	})
	return existing, err
}

func (r *registrationRepository) ClearAward(id uint) error {
	return r.db.Model(&model.Registration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"award_type":        nil,
			"award_assigned_at": nil,
			"award_assigned_by": nil,
		}).Error
}
