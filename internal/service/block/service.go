package block

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cupid-backend/internal/app"
	"cupid-backend/internal/db"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/repository"
)

// Service creates block relations and tears down every trace of the
// pair's interactions.
type Service struct {
	appCtx    *app.AppContext
	blockRepo *repository.BlockRepository
	matchRepo *repository.MatchRepository
	swipeRepo *repository.SwipeRepository
}

// NewService creates the block service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		blockRepo: repository.NewBlockRepository(appCtx.DB),
		matchRepo: repository.NewMatchRepository(appCtx.DB),
		swipeRepo: repository.NewSwipeRepository(appCtx.DB),
	}
}

// Block records blocker -> blocked and cascades the cleanup.
//
// Behavior:
//   - InvalidInput / SelfBlock / AlreadyBlocked are rejected before
//     any write.
//   - One transaction: insert the relation, delete the canonical
//     match's messages, conversation and match row (strict child-first
//     order), then delete swipes between the pair in both directions.
//   - Any step failing rolls back everything; a half-applied block
//     (relation present, match still alive) can never be observed.
func (s *Service) Block(ctx context.Context, blockerID, blockedID uint64, reason string) error {
	if blockerID == 0 || blockedID == 0 {
		return svcErr.InvalidInput("blocker and blocked ids are required")
	}
	if blockerID == blockedID {
		return svcErr.SelfBlock("cannot block yourself")
	}

	exists, err := s.blockRepo.Exists(ctx, blockerID, blockedID)
	if err != nil {
		return svcErr.Persistence(err)
	}
	if exists {
		return svcErr.AlreadyBlocked("user is already blocked")
	}

	err = s.appCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.blockRepo.WithTx(tx).Create(ctx, blockerID, blockedID, reason); err != nil {
			return err
		}

		matches := s.matchRepo.WithTx(tx)
		match, err := matches.FindByPair(ctx, blockerID, blockedID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if match != nil {
			if err := matches.DeleteCascade(ctx, match.ID); err != nil {
				return err
			}
		}

		return s.swipeRepo.WithTx(tx).DeleteBetween(ctx, blockerID, blockedID)
	})
	if err != nil {
		return svcErr.Persistence(err)
	}

	s.appCtx.Logger.Info("block created", "blocker", blockerID, "blocked", blockedID)
	return nil
}

// ListBlocked returns the caller's outgoing blocks.
func (s *Service) ListBlocked(ctx context.Context, blockerID uint64) ([]db.BlockRelation, error) {
	blocks, err := s.blockRepo.ListBlocked(ctx, blockerID)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}
	return blocks, nil
}
