package profile

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"cupid-backend/internal/app"
	"cupid-backend/internal/db"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/repository"
	"cupid-backend/internal/utils/age"
)

// View is the public profile shape, mirroring the user lookup the
// clients render.
type View struct {
	ID          uint64   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email,omitempty"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Bio         string   `json:"bio"`
	Gender      string   `json:"gender"`
	Age         int      `json:"age"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Active      bool     `json:"active"`
	Verified    bool     `json:"verified"`
	Pictures    []string `json:"pictures"`
}

// UpdateInput carries the caller-mutable profile fields. Nil means
// "leave unchanged".
type UpdateInput struct {
	Username    *string
	PhoneNumber *string
	Bio         *string
	Latitude    *float64
	Longitude   *float64
}

// Service handles profile reads and writes, preferences and genders.
type Service struct {
	appCtx   *app.AppContext
	userRepo *repository.UserRepository
	prefRepo *repository.PreferenceRepository
	picRepo  *repository.PictureRepository
}

// NewService creates the profile service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		userRepo: repository.NewUserRepository(appCtx.DB),
		prefRepo: repository.NewPreferenceRepository(appCtx.DB),
		picRepo:  repository.NewPictureRepository(appCtx.DB),
	}
}

// Get returns a user's profile. Contact fields are only included when
// the caller requests their own profile.
func (s *Service) Get(ctx context.Context, targetID, callerID uint64) (*View, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svcErr.UserNotFound("user not found")
	} else if err != nil {
		return nil, svcErr.Persistence(err)
	}

	pics, err := s.picRepo.ListByUser(ctx, targetID)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}
	urls := make([]string, len(pics))
	for i, p := range pics {
		urls[i] = p.FilePath
	}

	view := &View{
		ID:        user.ID,
		Username:  user.Username,
		Bio:       user.Bio,
		Gender:    user.Gender.Name,
		Age:       age.At(user.DateOfBirth, time.Now().UTC()),
		Latitude:  user.Latitude,
		Longitude: user.Longitude,
		Active:    user.Active,
		Verified:  user.Verified,
		Pictures:  urls,
	}
	if targetID == callerID {
		view.Email = user.Email
		view.PhoneNumber = user.PhoneNumber
	}
	return view, nil
}

// Update applies the caller's profile changes.
func (s *Service) Update(ctx context.Context, userID uint64, in UpdateInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return svcErr.UserNotFound("user not found")
	} else if err != nil {
		return svcErr.Persistence(err)
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Latitude != nil {
		user.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		user.Longitude = in.Longitude
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return svcErr.Persistence(err)
	}
	return nil
}

// Delete removes the caller's account. Hard delete per the lifecycle
// contract.
func (s *Service) Delete(ctx context.Context, userID uint64) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return svcErr.Persistence(err)
	}
	s.appCtx.Logger.Info("account deleted", "user", userID)
	return nil
}

// GetPreferences resolves the caller's discovery preferences.
func (s *Service) GetPreferences(ctx context.Context, userID uint64) (*repository.Preferences, error) {
	prefs, err := s.prefRepo.Get(ctx, userID)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}
	return prefs, nil
}

// PutPreferences replaces the caller's discovery preferences. Bounds
// are sanity-checked before the transactional write.
func (s *Service) PutPreferences(ctx context.Context, userID uint64, prefs *repository.Preferences) error {
	if prefs.MaxDistanceKm <= 0 {
		return svcErr.InvalidInput("max_distance_km must be positive")
	}
	if prefs.MinAge < 18 || prefs.MaxAge > 130 || prefs.MinAge > prefs.MaxAge {
		return svcErr.InvalidInput("age bounds must satisfy 18 <= min <= max <= 130")
	}

	if err := s.prefRepo.Put(ctx, userID, prefs); err != nil {
		return svcErr.Persistence(err)
	}
	return nil
}

// ListGenders returns the gender lookup table.
func (s *Service) ListGenders(ctx context.Context) ([]db.Gender, error) {
	genders, err := s.userRepo.ListGenders(ctx)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}
	return genders, nil
}

// AddPicture records an uploaded file for the caller. The first
// picture automatically becomes the profile picture.
func (s *Service) AddPicture(ctx context.Context, userID uint64, filePath string) (*db.Picture, error) {
	existing, err := s.picRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}

	pic := &db.Picture{
		UserID:    userID,
		FilePath:  filePath,
		IsProfile: len(existing) == 0,
	}
	if err := s.picRepo.Create(ctx, pic); err != nil {
		return nil, svcErr.Persistence(err)
	}
	return pic, nil
}

// ListPictures returns the caller's pictures, profile picture first.
func (s *Service) ListPictures(ctx context.Context, userID uint64) ([]db.Picture, error) {
	pics, err := s.picRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}
	return pics, nil
}

// SetProfilePicture marks one of the caller's pictures as primary.
func (s *Service) SetProfilePicture(ctx context.Context, userID, pictureID uint64) error {
	err := s.picRepo.SetProfile(ctx, userID, pictureID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return svcErr.NotFound("picture not found")
	} else if err != nil {
		return svcErr.Persistence(err)
	}
	return nil
}

// DeletePicture removes one of the caller's pictures.
func (s *Service) DeletePicture(ctx context.Context, userID, pictureID uint64) error {
	err := s.picRepo.Delete(ctx, userID, pictureID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return svcErr.NotFound("picture not found")
	} else if err != nil {
		return svcErr.Persistence(err)
	}
	return nil
}
