package block

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cupid-backend/internal/app"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/middleware"
	"cupid-backend/internal/server"
)

// Registrar ties the block service into the REST router.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the block service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

type blockRequest struct {
	BlockedID uint64 `json:"blocked_id" binding:"required"`
	Reason    string `json:"reason"`
}

// Register mounts the block routes.
func (r *Registrar) Register(api *gin.RouterGroup) {
	svc := NewService(r.appCtx)

	authed := api.Group("", middleware.AuthMiddleware(r.appCtx.Cfg.JWT.Secret))

	authed.POST("/blocks", func(c *gin.Context) {
		var req blockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			server.Fail(c, svcErr.InvalidInput("blocked_id is required"))
			return
		}

		if err := svc.Block(c.Request.Context(), middleware.MustUserID(c), req.BlockedID, req.Reason); err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"blocked": true})
	})

	authed.GET("/blocks", func(c *gin.Context) {
		blocks, err := svc.ListBlocked(c.Request.Context(), middleware.MustUserID(c))
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"blocks": blocks})
	})
}
