package swipe

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"cupid-backend/internal/app"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/repository"
)

// Result is the outcome of recording a swipe.
type Result struct {
	IsMatch bool    `json:"is_match"`
	MatchID *uint64 `json:"match_id,omitempty"`
}

// Service records swipe decisions and materializes matches on mutual
// likes.
type Service struct {
	appCtx    *app.AppContext
	swipeRepo *repository.SwipeRepository
	matchRepo *repository.MatchRepository
	blockRepo *repository.BlockRepository
}

// NewService creates the swipe service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		swipeRepo: repository.NewSwipeRepository(appCtx.DB),
		matchRepo: repository.NewMatchRepository(appCtx.DB),
		blockRepo: repository.NewBlockRepository(appCtx.DB),
	}
}

// Swipe records the decision swiper -> swiped and reports whether it
// completed a mutual like.
//
// Behavior:
//   - InvalidInput on zero ids or a self-swipe; BlockedPair when a
//     block exists in either direction. Both checked before any write.
//   - The swipe upsert, the reciprocal-like check and the match +
//     conversation materialization run in ONE transaction, so a
//     concurrent duplicate detection cannot commit two match rows; the
//     unique index on the canonical pair is the backstop.
//   - The Redis like counter is bumped after commit; cache failures do
//     not fail the swipe.
func (s *Service) Swipe(ctx context.Context, swiperID, swipedID uint64, liked bool) (*Result, error) {
	if swiperID == 0 || swipedID == 0 {
		return nil, svcErr.InvalidInput("swiper and swiped ids are required")
	}
	if swiperID == swipedID {
		return nil, svcErr.InvalidInput("cannot swipe on yourself")
	}

	blocked, err := s.blockRepo.ExistsBetween(ctx, swiperID, swipedID)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}
	if blocked {
		return nil, svcErr.BlockedPair("interaction between blocked users")
	}

	result := &Result{}
	err = s.appCtx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		swipes := s.swipeRepo.WithTx(tx)

		if err := swipes.Upsert(ctx, swiperID, swipedID, liked); err != nil {
			return err
		}
		if !liked {
			return nil
		}

		reciprocal, err := swipes.HasLiked(ctx, swipedID, swiperID)
		if err != nil {
			return err
		}
		if !reciprocal {
			return nil
		}

		match, _, err := s.matchRepo.WithTx(tx).Ensure(ctx, swiperID, swipedID)
		if err != nil {
			return err
		}
		result.IsMatch = true
		result.MatchID = &match.ID
		return nil
	})
	if err != nil {
		return nil, svcErr.Persistence(err)
	}

	if liked {
		s.appCtx.RedisCache.BumpLikeCount(ctx, swipedID, 1)
	} else {
		s.appCtx.RedisCache.BumpLikeCount(ctx, swipedID, -1)
	}

	if result.IsMatch {
		s.appCtx.Logger.Info("match created",
			"user1", strconv.FormatUint(swiperID, 10),
			"user2", strconv.FormatUint(swipedID, 10),
		)
	}

	return result, nil
}

// CountLikedYou returns how many users have a standing like on the
// caller. Cache-first: Redis with 1h TTL, DB as the cold path.
func (s *Service) CountLikedYou(ctx context.Context, userID uint64) (int64, error) {
	if count, hit, err := s.appCtx.RedisCache.GetLikeCount(ctx, userID); err == nil && hit {
		return count, nil
	}

	count, err := s.swipeRepo.CountLikers(ctx, userID)
	if err != nil {
		return 0, svcErr.Persistence(err)
	}

	_ = s.appCtx.RedisCache.SetLikeCount(ctx, userID, count)
	return count, nil
}
