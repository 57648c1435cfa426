package usageController

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admin/web-apps/banner-ai/internal/adapters/primary/http/middlewares"
	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/ports/usecase"
)

type Controller struct {
	UsageService usecase.IUsageUseCase
	Log          *slog.Logger
}

func New(usageService usecase.IUsageUseCase, log *slog.Logger) *Controller {
	return &Controller{
		UsageService: usageService,
		Log:          log,
	}
}

func (c *Controller) RegisterRoutes(router gin.IRouter) {
	router.GET("/usage", c.handleGetUsage)
	router.POST("/usage/increment", c.handleIncrement)
}

func (c *Controller) handleGetUsage(ctx *gin.Context) {
	clientID := middlewares.GetClientID(ctx)

	count, err := c.UsageService.Count(ctx.Request.Context(), clientID)
	if err != nil {
		c.Log.ErrorContext(ctx.Request.Context(), "failed to get usage",
			"error", err,
			"client_id", clientID)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, CountResponse{Count: count})
}

func (c *Controller) handleIncrement(ctx *gin.Context) {
	clientID := middlewares.GetClientID(ctx)

	count, err := c.UsageService.Increment(ctx.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, domain.ErrLimitReached) {
			ctx.JSON(http.StatusForbidden, ErrorResponse{Error: domain.LimitReachedMessage})
			return
		}
		c.Log.ErrorContext(ctx.Request.Context(), "failed to increment usage",
			"error", err,
			"client_id", clientID)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, CountResponse{Count: count})
}
