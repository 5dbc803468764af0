package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"choretracker/internal/clock"
	"choretracker/internal/services"
)

type Handler interface {
	HandleOAuthLogin(c *gin.Context)
	HandleOAuthCallback(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleGetUser(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleListChores(c *gin.Context)
	HandleFindChores(c *gin.Context)
	HandleAddChore(c *gin.Context)
	HandleCompleteChore(c *gin.Context)
	HandleDeleteChore(c *gin.Context)
	HandleRunAlerts(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	auth     services.AuthService
	sessions services.SessionService
	tasks    services.TaskService
	alerts   services.AlertService
	clk      *clock.Clock
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	sessionService services.SessionService,
	taskService services.TaskService,
	alertService services.AlertService,
	clk *clock.Clock,
) Handler {
	return &handlerImpl{
		logger:   logger,
		auth:     authService,
		sessions: sessionService,
		tasks:    taskService,
		alerts:   alertService,
		clk:      clk,
	}
}
