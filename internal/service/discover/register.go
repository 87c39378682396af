package discover

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cupid-backend/internal/app"
	"cupid-backend/internal/middleware"
	"cupid-backend/internal/server"
)

// Registrar ties the discovery service into the REST router.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the discovery service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register mounts the discovery routes.
func (r *Registrar) Register(api *gin.RouterGroup) {
	svc := NewService(r.appCtx)

	authed := api.Group("", middleware.AuthMiddleware(r.appCtx.Cfg.JWT.Secret))
	authed.GET("/discover", func(c *gin.Context) {
		userID := middleware.MustUserID(c)

		candidates, err := svc.Discover(c.Request.Context(), userID)
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"candidates": candidates})
	})
}
