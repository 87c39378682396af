package repository

import (
	"context"

	"gorm.io/gorm"

	"cupid-backend/internal/db"
)

// BlockRepository provides data access for directed block relations.
type BlockRepository struct {
	db *gorm.DB
}

// NewBlockRepository creates a new repository bound to the given DB connection.
func NewBlockRepository(database *gorm.DB) *BlockRepository {
	return &BlockRepository{db: database}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *BlockRepository) WithTx(tx *gorm.DB) *BlockRepository {
	return &BlockRepository{db: tx}
}

// Create inserts the directed relation blocker -> blocked.
func (r *BlockRepository) Create(ctx context.Context, blockerID, blockedID uint64, reason string) error {
	block := db.BlockRelation{
		BlockerID: blockerID,
		BlockedID: blockedID,
		Reason:    reason,
	}
	return r.db.WithContext(ctx).Create(&block).Error
}

// Exists checks the directed relation blocker -> blocked.
func (r *BlockRepository) Exists(ctx context.Context, blockerID, blockedID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.BlockRelation{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	return count > 0, err
}

// ExistsBetween checks whether a block exists in either direction.
// A hit suppresses the pair on every interaction surface.
func (r *BlockRepository) ExistsBetween(ctx context.Context, a, b uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.BlockRelation{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// ListInvolving returns the ids of everyone the user has blocked or
// been blocked by, both directions merged.
func (r *BlockRepository) ListInvolving(ctx context.Context, userID uint64) ([]uint64, error) {
	var outgoing []uint64
	if err := r.db.WithContext(ctx).
		Model(&db.BlockRelation{}).
		Where("blocker_id = ?", userID).
		Pluck("blocked_id", &outgoing).Error; err != nil {
		return nil, err
	}

	var incoming []uint64
	if err := r.db.WithContext(ctx).
		Model(&db.BlockRelation{}).
		Where("blocked_id = ?", userID).
		Pluck("blocker_id", &incoming).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{}, len(outgoing)+len(incoming))
	merged := make([]uint64, 0, len(outgoing)+len(incoming))
	for _, id := range append(outgoing, incoming...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
	}
	return merged, nil
}

// ListBlocked returns the users this user has blocked, with reasons.
func (r *BlockRepository) ListBlocked(ctx context.Context, blockerID uint64) ([]db.BlockRelation, error) {
	var blocks []db.BlockRelation
	err := r.db.WithContext(ctx).
		Where("blocker_id = ?", blockerID).
		Order("created_at DESC").
		Find(&blocks).Error
	return blocks, err
}
