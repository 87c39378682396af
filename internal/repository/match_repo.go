package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cupid-backend/internal/db"
)

// MatchRepository provides data access for matches and their
// conversation shells.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *MatchRepository) WithTx(tx *gorm.DB) *MatchRepository {
	return &MatchRepository{db: tx}
}

// CanonicalPair orders two user ids so the smaller one comes first.
// Every symmetric match row is stored in this single representation.
func CanonicalPair(a, b uint64) (uint64, uint64) {
	if a < b {
		return a, b
	}
	return b, a
}

// FindByPair returns the match between two users (any argument order),
// or gorm.ErrRecordNotFound.
func (r *MatchRepository) FindByPair(ctx context.Context, a, b uint64) (*db.Match, error) {
	lo, hi := CanonicalPair(a, b)
	var match db.Match
	err := r.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", lo, hi).
		First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// Ensure materializes the match for a mutual-like pair, idempotently.
//
// Behavior:
//   - Canonicalizes the pair ordering (low id first).
//   - Inserts the match row with ON CONFLICT DO NOTHING; the unique
//     index on (user1_id, user2_id) absorbs concurrent duplicate
//     detections.
//   - A lost insert race resolves by fetching the winner's row.
//   - The conversation shell is created together with a fresh match.
//
// Meant to run inside the swipe transaction so match and conversation
// commit or roll back together.
func (r *MatchRepository) Ensure(ctx context.Context, a, b uint64) (*db.Match, bool, error) {
	lo, hi := CanonicalPair(a, b)

	match := db.Match{User1ID: lo, User2ID: hi}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&match)
	if res.Error != nil {
		return nil, false, res.Error
	}

	if res.RowsAffected == 0 {
		// already matched: fetch the existing row instead of erroring
		existing, err := r.FindByPair(ctx, lo, hi)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	conv := db.Conversation{MatchID: match.ID}
	if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, false, err
	}

	return &match, true, nil
}

// GetConversation returns the conversation shell for a match.
func (r *MatchRepository) GetConversation(ctx context.Context, matchID uint64) (*db.Conversation, error) {
	var conv db.Conversation
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListForUser returns all matches the user participates in, newest first.
func (r *MatchRepository) ListForUser(ctx context.Context, userID uint64) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	return matches, err
}

// DeleteCascade removes a match with its conversation and messages, in
// strict child-first order for referential integrity. Runs inside the
// block transaction.
func (r *MatchRepository) DeleteCascade(ctx context.Context, matchID uint64) error {
	conv, err := r.GetConversation(ctx, matchID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if conv != nil {
		if err := r.db.WithContext(ctx).
			Where("conversation_id = ?", conv.ID).
			Delete(&db.Message{}).Error; err != nil {
			return err
		}
		if err := r.db.WithContext(ctx).
			Delete(&db.Conversation{}, conv.ID).Error; err != nil {
			return err
		}
	}

	return r.db.WithContext(ctx).Delete(&db.Match{}, matchID).Error
}
