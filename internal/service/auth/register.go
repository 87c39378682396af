package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cupid-backend/internal/app"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/middleware"
	"cupid-backend/internal/server"
)

// Registrar ties the auth service into the REST router.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the auth service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

type registerRequest struct {
	Username    string   `json:"username" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=8"`
	PhoneNumber string   `json:"phone_number"`
	Bio         string   `json:"bio"`
	DateOfBirth string   `json:"date_of_birth" binding:"required"`
	GenderID    uint64   `json:"gender_id" binding:"required"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register mounts the auth routes.
func (r *Registrar) Register(api *gin.RouterGroup) {
	svc := NewService(r.appCtx)

	api.POST("/register", func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			server.Fail(c, svcErr.InvalidInput("invalid registration payload"))
			return
		}

		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			server.Fail(c, svcErr.InvalidInput("date_of_birth must be YYYY-MM-DD"))
			return
		}

		user, err := svc.Register(c.Request.Context(), RegisterInput{
			Username:    req.Username,
			Email:       req.Email,
			Password:    req.Password,
			PhoneNumber: req.PhoneNumber,
			Bio:         req.Bio,
			DateOfBirth: dob,
			GenderID:    req.GenderID,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
		})
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user_id": user.ID})
	})

	api.POST("/login", func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			server.Fail(c, svcErr.InvalidInput("email and password are required"))
			return
		}

		session, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	})

	authed := api.Group("", middleware.AuthMiddleware(r.appCtx.Cfg.JWT.Secret))
	authed.GET("/me", func(c *gin.Context) {
		user, err := svc.userRepo.GetByID(c.Request.Context(), middleware.MustUserID(c))
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		})
	})
}
