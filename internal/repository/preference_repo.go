package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cupid-backend/internal/db"
)

// Default discovery bounds applied while a user has no preference row.
const (
	DefaultMaxDistanceKm = 50
	DefaultMinAge        = 18
	DefaultMaxAge        = 99
)

// Preferences is the resolved view handed to the discovery pipeline:
// stored values when present, defaults otherwise. An empty
// PreferredGenderIDs slice means "no gender filter".
type Preferences struct {
	MaxDistanceKm      int
	MinAge             int
	MaxAge             int
	PreferredGenderIDs []uint64
}

// PreferenceRepository provides data access for discovery preferences.
type PreferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new repository bound to the given DB connection.
func NewPreferenceRepository(database *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: database}
}

// Get resolves a user's preferences, falling back to defaults when no
// row exists. Never returns a not-found error.
func (r *PreferenceRepository) Get(ctx context.Context, userID uint64) (*Preferences, error) {
	prefs := &Preferences{
		MaxDistanceKm: DefaultMaxDistanceKm,
		MinAge:        DefaultMinAge,
		MaxAge:        DefaultMaxAge,
	}

	var row db.Preference
	err := r.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	switch {
	case err == nil:
		prefs.MaxDistanceKm = row.MaxDistanceKm
		prefs.MinAge = row.MinAge
		prefs.MaxAge = row.MaxAge
	case errors.Is(err, gorm.ErrRecordNotFound):
		// lazy creation: defaults apply until the first write
	default:
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&db.PreferredGender{}).
		Where("user_id = ?", userID).
		Pluck("gender_id", &prefs.PreferredGenderIDs).Error; err != nil {
		return nil, err
	}

	return prefs, nil
}

// Put replaces a user's preferences in one transaction.
//
// Behavior:
//   - Upserts the bounds row (lazy creation on first write).
//   - Replaces the preferred-gender set with delete-all-then-insert.
//   - Both run inside a single transaction so a concurrent read never
//     observes a half-applied gender set.
func (r *PreferenceRepository) Put(ctx context.Context, userID uint64, prefs *Preferences) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := db.Preference{
			UserID:        userID,
			MaxDistanceKm: prefs.MaxDistanceKm,
			MinAge:        prefs.MinAge,
			MaxAge:        prefs.MaxAge,
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).
			Delete(&db.PreferredGender{}).Error; err != nil {
			return err
		}
		for _, genderID := range prefs.PreferredGenderIDs {
			edge := db.PreferredGender{UserID: userID, GenderID: genderID}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
