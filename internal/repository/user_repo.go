package repository

import (
	"context"

	"gorm.io/gorm"

	"cupid-backend/internal/db"
)

// UserRepository provides data access for user accounts.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// GetByID loads a user with their gender preloaded.
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).
		Preload("Gender").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail loads a user by email for the login path.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update persists mutated profile fields.
func (r *UserRepository) Update(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes the account row. Hard delete, no tombstone.
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&db.User{}, id).Error
}

// SetActive toggles the ban flag (admin moderation).
func (r *UserRepository) SetActive(ctx context.Context, id uint64, active bool) error {
	return r.setFlag(ctx, id, "active", active)
}

// SetVerified toggles the verification badge (admin moderation).
func (r *UserRepository) SetVerified(ctx context.Context, id uint64, verified bool) error {
	return r.setFlag(ctx, id, "verified", verified)
}

func (r *UserRepository) setFlag(ctx context.Context, id uint64, column string, value bool) error {
	res := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListCandidatePool returns users structurally eligible to be shown to
// the requester, before distance and age filtering.
//
// Behavior:
//   - Excludes the requester, admins, inactive accounts and users
//     without a location.
//   - Excludes ids the requester already swiped on and ids blocked in
//     either direction (both passed in by the caller).
//   - Restricts to genderIDs when the set is non-empty.
//   - Ordered by verified DESC, created_at DESC (ranking contract).
func (r *UserRepository) ListCandidatePool(
	ctx context.Context,
	requesterID uint64,
	excludeIDs []uint64,
	genderIDs []uint64,
) ([]db.User, error) {
	query := r.db.WithContext(ctx).
		Preload("Gender").
		Where("id <> ?", requesterID).
		Where("role = ?", db.RoleUser).
		Where("active = ?", true).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL")

	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	if len(genderIDs) > 0 {
		query = query.Where("gender_id IN ?", genderIDs)
	}

	var users []db.User
	err := query.
		Order("verified DESC, created_at DESC").
		Find(&users).Error
	return users, err
}

// ListGenders returns the gender lookup table.
func (r *UserRepository) ListGenders(ctx context.Context) ([]db.Gender, error) {
	var genders []db.Gender
	err := r.db.WithContext(ctx).Order("id").Find(&genders).Error
	return genders, err
}
