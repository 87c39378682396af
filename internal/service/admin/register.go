package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cupid-backend/internal/app"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/middleware"
	"cupid-backend/internal/server"
)

// Registrar ties reporting and moderation into the REST router.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the moderation service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

type reportRequest struct {
	ReportedID uint64 `json:"reported_id" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

type flagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// Register mounts the report route and the admin moderation routes.
func (r *Registrar) Register(api *gin.RouterGroup) {
	svc := NewService(r.appCtx)

	authed := api.Group("", middleware.AuthMiddleware(r.appCtx.Cfg.JWT.Secret))

	authed.POST("/reports", func(c *gin.Context) {
		var req reportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			server.Fail(c, svcErr.InvalidInput("reported_id and reason are required"))
			return
		}

		report, err := svc.FileReport(c.Request.Context(), middleware.MustUserID(c), req.ReportedID, req.Reason)
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, report)
	})

	authed.GET("/reports", func(c *gin.Context) {
		reports, err := svc.ListOwnReports(c.Request.Context(), middleware.MustUserID(c))
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reports": reports})
	})

	adm := authed.Group("/admin", middleware.AdminOnly())

	adm.GET("/reports", func(c *gin.Context) {
		reports, err := svc.ListReports(c.Request.Context(), c.Query("status"))
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reports": reports})
	})

	adm.PUT("/reports/:id/resolve", func(c *gin.Context) {
		reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			server.Fail(c, svcErr.InvalidInput("id must be a valid uint64"))
			return
		}
		if err := svc.ResolveReport(c.Request.Context(), reportID); err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"resolved": true})
	})

	adm.PUT("/users/:id/active", flagHandler(svc.SetActive))
	adm.PUT("/users/:id/verified", flagHandler(svc.SetVerified))
}

// flagHandler wraps the two moderation toggles sharing the same
// request shape.
func flagHandler(set func(ctx context.Context, userID uint64, value bool) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			server.Fail(c, svcErr.InvalidInput("id must be a valid uint64"))
			return
		}

		var req flagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			server.Fail(c, svcErr.InvalidInput("value is required"))
			return
		}

		if err := set(c.Request.Context(), userID, *req.Value); err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}
