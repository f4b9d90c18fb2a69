package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"frigotec.com/frigotec/ponto/model"
)

// Profiles reads user profiles owned by the identity collaborators.
// The only write this service ever performs is the super-admin
// reconciliation.
type Profiles struct {
	db *gorm.DB
}

func NewProfiles(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

func (s *Profiles) Find(ctx context.Context, uid string) (*model.UserProfile, error) {
	var p model.UserProfile
	err := s.db.WithContext(ctx).Where("uid = ?", uid).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find profile %s: %w", uid, err)
	}
	return &p, nil
}

// RepairSuperAdmin is the one-time reconciliation write: an allow-listed
// identity whose stored profile disagrees gets admin role, no time
// clock requirement, and management permissions.
func (s *Profiles) RepairSuperAdmin(ctx context.Context, uid string) error {
	err := s.db.WithContext(ctx).
		Model(&model.UserProfile{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"role":                "admin",
			"requires_time_clock": false,
			"can_manage_users":    true,
		}).Error
	if err != nil {
		return fmt.Errorf("repair super admin %s: %w", uid, err)
	}
	return nil
}

// SetAvatar records the reference photo URL after an avatar capture.
func (s *Profiles) SetAvatar(ctx context.Context, uid, url string) error {
	err := s.db.WithContext(ctx).
		Model(&model.UserProfile{}).
		Where("uid = ?", uid).
		Update("avatar_url", url).Error
	if err != nil {
		return fmt.Errorf("set avatar for %s: %w", uid, err)
	}
	return nil
}
