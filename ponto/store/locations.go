package store

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"frigotec.com/frigotec/ponto/model"
)

// Locations reads the geofence definitions. Management of the rows is
// an external CRUD collaborator; the ponto flow only consumes them.
type Locations struct {
	db *gorm.DB
}

func NewLocations(db *gorm.DB) *Locations {
	return &Locations{db: db}
}

// Active returns all active locations ordered by id, which is also the
// match priority on overlapping zones.
func (s *Locations) Active(ctx context.Context) ([]model.WorkLocation, error) {
	var zones []model.WorkLocation
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&zones).Error
	if err != nil {
		return nil, fmt.Errorf("active locations: %w", err)
	}
	return zones, nil
}

// AllowedFor resolves the zones a profile may clock in from, and
// whether the profile gets the unrestricted admin bypass (admin with
// no assigned zones).
func (s *Locations) AllowedFor(ctx context.Context, profile *model.UserProfile) ([]model.WorkLocation, bool, error) {
	var allowedIDs []string
	if len(profile.AllowedLocationIDs) > 0 {
		if err := json.Unmarshal(profile.AllowedLocationIDs, &allowedIDs); err != nil {
			return nil, false, fmt.Errorf("allowed_location_ids for %s: %w", profile.UID, err)
		}
	}

	if len(allowedIDs) == 0 {
		if profile.Role == model.RoleAdmin {
			return nil, true, nil
		}
		// Non-admin with no assignment may clock in at any active site.
		zones, err := s.Active(ctx)
		return zones, false, err
	}

	var zones []model.WorkLocation
	err := s.db.WithContext(ctx).
		Where("active = ? AND id IN ?", true, allowedIDs).
		Order("id ASC").
		Find(&zones).Error
	if err != nil {
		return nil, false, fmt.Errorf("allowed locations: %w", err)
	}
	return zones, false, nil
}
