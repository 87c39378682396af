package repository

import (
	"context"

	"gorm.io/gorm"

	"cupid-backend/internal/db"
)

// PictureRepository provides data access for upload bookkeeping.
type PictureRepository struct {
	db *gorm.DB
}

// NewPictureRepository creates a new repository bound to the given DB connection.
func NewPictureRepository(database *gorm.DB) *PictureRepository {
	return &PictureRepository{db: database}
}

// Create records an uploaded picture.
func (r *PictureRepository) Create(ctx context.Context, pic *db.Picture) error {
	return r.db.WithContext(ctx).Create(pic).Error
}

// ListByUser returns a user's pictures, profile picture first.
func (r *PictureRepository) ListByUser(ctx context.Context, userID uint64) ([]db.Picture, error) {
	var pics []db.Picture
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_profile DESC, created_at DESC").
		Find(&pics).Error
	return pics, err
}

// ListByUsers returns pictures for a set of users keyed by owner,
// so discovery can attach them without one query per candidate.
func (r *PictureRepository) ListByUsers(ctx context.Context, userIDs []uint64) (map[uint64][]db.Picture, error) {
	grouped := make(map[uint64][]db.Picture, len(userIDs))
	if len(userIDs) == 0 {
		return grouped, nil
	}

	var pics []db.Picture
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("is_profile DESC, created_at DESC").
		Find(&pics).Error
	if err != nil {
		return nil, err
	}

	for _, p := range pics {
		grouped[p.UserID] = append(grouped[p.UserID], p)
	}
	return grouped, nil
}

// SetProfile marks one picture as the profile picture and clears the
// flag on the user's other pictures, in one transaction.
func (r *PictureRepository) SetProfile(ctx context.Context, userID, pictureID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db.Picture{}).
			Where("id = ? AND user_id = ?", pictureID, userID).
			Update("is_profile", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&db.Picture{}).
			Where("user_id = ? AND id <> ?", userID, pictureID).
			Update("is_profile", false).Error
	})
}

// Delete removes a picture row owned by the user.
func (r *PictureRepository) Delete(ctx context.Context, userID, pictureID uint64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", pictureID, userID).
		Delete(&db.Picture{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
