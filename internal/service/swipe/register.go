package swipe

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cupid-backend/internal/app"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/middleware"
	"cupid-backend/internal/server"
)

// Registrar ties the swipe service into the REST router.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the swipe service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

type swipeRequest struct {
	SwipedID uint64 `json:"swiped_id" binding:"required"`
	Liked    *bool  `json:"liked" binding:"required"`
}

// Register mounts the swipe routes.
func (r *Registrar) Register(api *gin.RouterGroup) {
	svc := NewService(r.appCtx)

	authed := api.Group("", middleware.AuthMiddleware(r.appCtx.Cfg.JWT.Secret))

	authed.POST("/swipes", func(c *gin.Context) {
		var req swipeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			server.Fail(c, svcErr.InvalidInput("swiped_id and liked are required"))
			return
		}

		result, err := svc.Swipe(c.Request.Context(), middleware.MustUserID(c), req.SwipedID, *req.Liked)
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	authed.GET("/likes/count", func(c *gin.Context) {
		count, err := svc.CountLikedYou(c.Request.Context(), middleware.MustUserID(c))
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	})
}
