package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cupid-backend/internal/db"
)

// SwipeRepository provides data access for like/pass decisions
// between users.
type SwipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a new repository bound to the given DB connection.
func NewSwipeRepository(database *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: database}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *SwipeRepository) WithTx(tx *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: tx}
}

// Upsert inserts or updates the decision swiper -> swiped.
//
// Behavior:
//   - If the (swiper_id, swiped_id) pair exists → the row is updated
//     with the new "liked" value.
//   - If it doesn't exist → a new row is inserted.
//   - Composite PK gives the single-row-per-pair guarantee.
//
// Example:
//
//	repo.Upsert(ctx, 1, 2, true) // user 1 liked user 2
func (r *SwipeRepository) Upsert(ctx context.Context, swiperID, swipedID uint64, liked bool) error {
	swipe := db.Swipe{
		SwiperID: swiperID,
		SwipedID: swipedID,
		Liked:    liked,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "swiper_id"}, {Name: "swiped_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
		}).
		Create(&swipe).Error
}

// Get returns the decision swiper -> swiped, or gorm.ErrRecordNotFound.
func (r *SwipeRepository) Get(ctx context.Context, swiperID, swipedID uint64) (*db.Swipe, error) {
	var swipe db.Swipe
	err := r.db.WithContext(ctx).
		Where("swiper_id = ? AND swiped_id = ?", swiperID, swipedID).
		First(&swipe).Error
	if err != nil {
		return nil, err
	}
	return &swipe, nil
}

// HasLiked checks whether swiper has a standing like on swiped.
// Used for the reciprocal check during match detection.
func (r *SwipeRepository) HasLiked(ctx context.Context, swiperID, swipedID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("swiper_id = ? AND swiped_id = ? AND liked = ?", swiperID, swipedID, true).
		Count(&count).Error
	return count > 0, err
}

// ListSwipedTargets returns the ids this swiper has already decided on,
// liked or passed. Discovery excludes all of them.
func (r *SwipeRepository) ListSwipedTargets(ctx context.Context, swiperID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("swiper_id = ?", swiperID).
		Pluck("swiped_id", &ids).Error
	return ids, err
}

// CountLikers returns how many users have a standing like on the given
// user. Used behind the Redis counter as the cold path.
func (r *SwipeRepository) CountLikers(ctx context.Context, swipedID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("swiped_id = ? AND liked = ?", swipedID, true).
		Count(&count).Error
	return count, err
}

// DeleteBetween removes all decisions between two users in both
// directions. Runs inside the block transaction.
func (r *SwipeRepository) DeleteBetween(ctx context.Context, a, b uint64) error {
	return r.db.WithContext(ctx).
		Where("(swiper_id = ? AND swiped_id = ?) OR (swiper_id = ? AND swiped_id = ?)", a, b, b, a).
		Delete(&db.Swipe{}).Error
}
