package profile

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cupid-backend/internal/app"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/middleware"
	"cupid-backend/internal/repository"
	"cupid-backend/internal/server"
)

// Registrar ties the profile service into the REST router.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the profile service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

type updateRequest struct {
	Username    *string  `json:"username"`
	PhoneNumber *string  `json:"phone_number"`
	Bio         *string  `json:"bio"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type preferencesRequest struct {
	MaxDistanceKm      int      `json:"max_distance_km" binding:"required"`
	MinAge             int      `json:"min_age" binding:"required"`
	MaxAge             int      `json:"max_age" binding:"required"`
	PreferredGenderIDs []uint64 `json:"preferred_gender_ids"`
}

// Register mounts the profile, preference, gender and picture routes.
func (r *Registrar) Register(api *gin.RouterGroup) {
	svc := NewService(r.appCtx)

	api.GET("/genders", func(c *gin.Context) {
		genders, err := svc.ListGenders(c.Request.Context())
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"genders": genders})
	})

	authed := api.Group("", middleware.AuthMiddleware(r.appCtx.Cfg.JWT.Secret))

	authed.GET("/users/:id", func(c *gin.Context) {
		targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			server.Fail(c, svcErr.InvalidInput("id must be a valid uint64"))
			return
		}

		view, err := svc.Get(c.Request.Context(), targetID, middleware.MustUserID(c))
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	})

	authed.PUT("/profile", func(c *gin.Context) {
		var req updateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			server.Fail(c, svcErr.InvalidInput("invalid profile payload"))
			return
		}

		err := svc.Update(c.Request.Context(), middleware.MustUserID(c), UpdateInput(req))
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": true})
	})

	authed.DELETE("/profile", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), middleware.MustUserID(c)); err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	})

	authed.GET("/preferences", func(c *gin.Context) {
		prefs, err := svc.GetPreferences(c.Request.Context(), middleware.MustUserID(c))
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, prefs)
	})

	authed.PUT("/preferences", func(c *gin.Context) {
		var req preferencesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			server.Fail(c, svcErr.InvalidInput("invalid preferences payload"))
			return
		}

		err := svc.PutPreferences(c.Request.Context(), middleware.MustUserID(c), &repository.Preferences{
			MaxDistanceKm:      req.MaxDistanceKm,
			MinAge:             req.MinAge,
			MaxAge:             req.MaxAge,
			PreferredGenderIDs: req.PreferredGenderIDs,
		})
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": true})
	})

	authed.POST("/pictures", func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			server.Fail(c, svcErr.InvalidInput("no file uploaded"))
			return
		}

		// uuid filename, original extension kept
		stored := uuid.NewString() + filepath.Ext(file.Filename)
		dst := filepath.Join(r.appCtx.Cfg.Upload.Dir, stored)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			server.Fail(c, svcErr.Persistence(err))
			return
		}

		pic, err := svc.AddPicture(c.Request.Context(), middleware.MustUserID(c), "/uploads/"+stored)
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, pic)
	})

	authed.GET("/pictures", func(c *gin.Context) {
		pics, err := svc.ListPictures(c.Request.Context(), middleware.MustUserID(c))
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"pictures": pics})
	})

	authed.PUT("/pictures/:id/profile", func(c *gin.Context) {
		picID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			server.Fail(c, svcErr.InvalidInput("id must be a valid uint64"))
			return
		}
		if err := svc.SetProfilePicture(c.Request.Context(), middleware.MustUserID(c), picID); err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": true})
	})

	authed.DELETE("/pictures/:id", func(c *gin.Context) {
		picID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			server.Fail(c, svcErr.InvalidInput("id must be a valid uint64"))
			return
		}
		if err := svc.DeletePicture(c.Request.Context(), middleware.MustUserID(c), picID); err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	})
}
