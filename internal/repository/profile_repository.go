package repository

import (
	"github.com/hackdesk/hackdesk/internal/model"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	// FindByUserIDs returns the profiles that exist, keyed by user id.
	// Missing profiles are simply absent from the map, never an error.
	FindByUserIDs(userIDs []uint) (map[uint]model.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUserIDs(userIDs []uint) (map[uint]model.Profile, error) {
	if len(userIDs) == 0 {
		return map[uint]model.Profile{}, nil
	}
	var profiles []model.Profile
	if err := r.db.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	byUser := make(map[uint]model.Profile, len(profiles))
	for _, p := range profiles {
		byUser[p.UserID] = p
	}
	return byUser, nil
}
