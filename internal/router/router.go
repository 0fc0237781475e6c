package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradingconf/registration/internal/handler"
	"github.com/tradingconf/registration/internal/logger"
	"github.com/tradingconf/registration/internal/metrics"
	"github.com/tradingconf/registration/internal/middleware"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Application *handler.ApplicationHandler
	Team        *handler.TeamHandler
	Invite      *handler.InviteHandler
	User        *handler.UserHandler
}

// Options configures the cross-cutting middleware.
type Options struct {
	Verifier    middleware.TokenVerifier
	RateLimiter *middleware.RateLimiter
	Logger      *logger.Logger
}

// SetupRoutes configures all API routes.
func SetupRoutes(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(opts.Logger), metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api", middleware.NoStore(), middleware.Auth(opts.Verifier, opts.Logger))
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.Handler())
	}

	// Application endpoints
	api.POST("/application", h.Application.Submit)
	api.GET("/application-info", h.Application.Info)

	// User endpoints
	api.GET("/user", h.User.Profile)
	api.GET("/user-directory", h.User.Directory)

	// Team endpoints
	api.GET("/team", h.Team.GetTeam)
	api.POST("/leave_team", h.Team.LeaveTeam)

	// Invite endpoints
	api.POST("/send_team_invite", h.Invite.SendInvite)
	api.POST("/accept_invite", h.Invite.AcceptInvite)
	api.POST("/reject_invite", h.Invite.RejectInvite)
	api.POST("/cancel_invite", h.Invite.CancelInvite)
	api.GET("/get_invites", h.Invite.ListInvites)

	return r
}
