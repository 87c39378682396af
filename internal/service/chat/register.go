package chat

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cupid-backend/internal/app"
	svcErr "cupid-backend/internal/errors"
	"cupid-backend/internal/middleware"
	"cupid-backend/internal/server"
)

// defaultPageSize bounds one page of message history.
const defaultPageSize = 20

// Registrar ties the chat service into the REST router.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the chat service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

type sendRequest struct {
	Content string `json:"content" binding:"required"`
}

// Register mounts the match listing and messaging routes.
func (r *Registrar) Register(api *gin.RouterGroup) {
	svc := NewService(r.appCtx)

	authed := api.Group("", middleware.AuthMiddleware(r.appCtx.Cfg.JWT.Secret))

	authed.GET("/matches", func(c *gin.Context) {
		matches, err := svc.ListMatches(c.Request.Context(), middleware.MustUserID(c))
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"matches": matches})
	})

	authed.GET("/conversations/:id/messages", func(c *gin.Context) {
		convID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			server.Fail(c, svcErr.InvalidInput("id must be a valid uint64"))
			return
		}

		var token *string
		if t := c.Query("pagination_token"); t != "" {
			token = &t
		}

		messages, next, err := svc.ListMessages(c.Request.Context(), middleware.MustUserID(c), convID, token, defaultPageSize)
		if err != nil {
			server.Fail(c, err)
			return
		}

		resp := gin.H{"messages": messages}
		if next != nil {
			resp["next_pagination_token"] = *next
		}
		c.JSON(http.StatusOK, resp)
	})

	authed.POST("/conversations/:id/messages", func(c *gin.Context) {
		convID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			server.Fail(c, svcErr.InvalidInput("id must be a valid uint64"))
			return
		}

		var req sendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			server.Fail(c, svcErr.InvalidInput("content is required"))
			return
		}

		msg, err := svc.SendMessage(c.Request.Context(), middleware.MustUserID(c), convID, req.Content)
		if err != nil {
			server.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, msg)
	})
}
