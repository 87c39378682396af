package discover

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"cupid-backend/internal/app"
	"cupid-backend/internal/db"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/geo"
	"cupid-backend/internal/repository"
	"cupid-backend/internal/utils/age"
)

// PlaceholderPicture marks candidates without any uploaded picture, so
// clients never render a broken link.
const PlaceholderPicture = "placeholder"

// Candidate is one entry of the discovery result.
type Candidate struct {
	ID         uint64   `json:"id"`
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Bio        string   `json:"bio"`
	Verified   bool     `json:"verified"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	DistanceKm float64  `json:"distance_km"`
	Pictures   []string `json:"pictures"`
}

// Service computes the filtered, distance-ranked candidate set for a
// user. Pure read path: no side effects.
type Service struct {
	appCtx    *app.AppContext
	userRepo  *repository.UserRepository
	prefRepo  *repository.PreferenceRepository
	swipeRepo *repository.SwipeRepository
	blockRepo *repository.BlockRepository
	picRepo   *repository.PictureRepository
}

// NewService creates the discovery service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		userRepo:  repository.NewUserRepository(appCtx.DB),
		prefRepo:  repository.NewPreferenceRepository(appCtx.DB),
		swipeRepo: repository.NewSwipeRepository(appCtx.DB),
		blockRepo: repository.NewBlockRepository(appCtx.DB),
		picRepo:   repository.NewPictureRepository(appCtx.DB),
	}
}

// Discover returns the ordered candidate list for a user.
//
// Pipeline:
//  1. Load the requester; a missing row or missing location fails with
//     UserNotFound before anything else runs.
//  2. Resolve preferences (defaults when no row exists).
//  3. Pull the structurally eligible pool: not self, role=user, active,
//     located, not already swiped, not blocked either direction,
//     restricted to preferred genders when the set is non-empty.
//  4. Filter by calendar-aware age bounds.
//  5. Score each survivor with the Haversine distance and drop anyone
//     beyond the requester's max-distance preference.
//  6. Pool ordering (verified DESC, created_at DESC) is preserved.
//  7. Attach pictures; candidates without one get the placeholder.
func (s *Service) Discover(ctx context.Context, userID uint64) ([]Candidate, error) {
	requester, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svcErr.UserNotFound("user not found")
	} else if err != nil {
		return nil, svcErr.Persistence(err)
	}
	if requester.Latitude == nil || requester.Longitude == nil {
		return nil, svcErr.UserNotFound("user has no location set")
	}

	prefs, err := s.prefRepo.Get(ctx, userID)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}

	swiped, err := s.swipeRepo.ListSwipedTargets(ctx, userID)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}
	blocked, err := s.blockRepo.ListInvolving(ctx, userID)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}
	exclude := append(swiped, blocked...)

	pool, err := s.userRepo.ListCandidatePool(ctx, userID, exclude, prefs.PreferredGenderIDs)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}

	now := time.Now().UTC()
	candidates := make([]Candidate, 0, len(pool))
	var kept []db.User
	for _, u := range pool {
		years := age.At(u.DateOfBirth, now)
		if years < prefs.MinAge || years > prefs.MaxAge {
			continue
		}

		dist := geo.DistanceKm(*requester.Latitude, *requester.Longitude, *u.Latitude, *u.Longitude)
		if dist > float64(prefs.MaxDistanceKm) {
			continue
		}

		kept = append(kept, u)
		candidates = append(candidates, Candidate{
			ID:         u.ID,
			Name:       u.Username,
			Age:        years,
			Bio:        u.Bio,
			Verified:   u.Verified,
			Latitude:   *u.Latitude,
			Longitude:  *u.Longitude,
			DistanceKm: dist,
		})
	}

	ids := make([]uint64, len(kept))
	for i, u := range kept {
		ids[i] = u.ID
	}
	pictures, err := s.picRepo.ListByUsers(ctx, ids)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}

	for i := range candidates {
		pics := pictures[candidates[i].ID]
		if len(pics) == 0 {
			candidates[i].Pictures = []string{PlaceholderPicture}
			continue
		}
		urls := make([]string, len(pics))
		for j, p := range pics {
			urls[j] = p.FilePath
		}
		candidates[i].Pictures = urls
	}

	s.appCtx.Logger.Debug("discover computed", "user", userID, "candidates", len(candidates))

	return candidates, nil
}
