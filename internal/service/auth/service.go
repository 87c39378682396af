package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cupid-backend/internal/app"
	"cupid-backend/internal/db"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/middleware"
	"cupid-backend/internal/repository"
	"cupid-backend/internal/utils/age"
)

const minRegistrationAge = 18

// RegisterInput carries a new account's fields.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber string
	Bio         string
	DateOfBirth time.Time
	GenderID    uint64
	Latitude    *float64
	Longitude   *float64
}

// Session is the login result handed to the client.
type Session struct {
	Token  string `json:"token"`
	UserID uint64 `json:"user_id"`
	Role   string `json:"role"`
}

// Service handles registration and credential verification.
type Service struct {
	appCtx   *app.AppContext
	userRepo *repository.UserRepository
}

// NewService creates the auth service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		userRepo: repository.NewUserRepository(appCtx.DB),
	}
}

// Register creates a new user account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*db.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.GenderID == 0 {
		return nil, svcErr.InvalidInput("username, email, password and gender are required")
	}
	if in.DateOfBirth.IsZero() || age.At(in.DateOfBirth, time.Now().UTC()) < minRegistrationAge {
		return nil, svcErr.InvalidInput("you must be at least 18 years old")
	}

	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, svcErr.AlreadyExists("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svcErr.Persistence(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}

	user := &db.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		PhoneNumber:  in.PhoneNumber,
		Bio:          in.Bio,
		DateOfBirth:  in.DateOfBirth,
		GenderID:     in.GenderID,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Active:       true,
		Role:         db.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, svcErr.Persistence(err)
	}

	s.appCtx.Logger.Info("user registered", "user", user.ID)
	return user, nil
}

// Login verifies credentials and issues a signed token. Invalid email
// and invalid password produce the same error, on purpose.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, svcErr.InvalidInput("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svcErr.Unauthorized("invalid email or password")
	} else if err != nil {
		return nil, svcErr.Persistence(err)
	}

	if !user.Active {
		return nil, svcErr.Forbidden("account is deactivated")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, svcErr.Unauthorized("invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, svcErr.Persistence(err)
	}

	return &Session{Token: token, UserID: user.ID, Role: user.Role}, nil
}

func (s *Service) issueToken(user *db.User) (string, error) {
	now := time.Now()
	claims := middleware.AuthClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.appCtx.Cfg.JWT.TTLHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appCtx.Cfg.JWT.Secret))
}
