package bannerController

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
	BannerService usecase.IBannerUseCase
	Log           *slog.Logger
}

func New(bannerService usecase.IBannerUseCase, log *slog.Logger) *Controller {
	return &Controller{
		BannerService: bannerService,
		Log:           log,
	}
}

func (c *Controller) RegisterRoutes(router gin.IRouter) {
	router.GET("/styles", c.handleStyles)
	router.POST("/generate", c.handleGenerate)
}

func (c *Controller) handleStyles(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, StylesResponse{Styles: c.BannerService.Styles()})
}

func (c *Controller) handleGenerate(ctx *gin.Context) {
	var req GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.WarnContext(ctx.Request.Context(), "failed to bind generate request", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	clientID := middlewares.GetClientID(ctx)
	res, err := c.BannerService.Generate(ctx.Request.Context(), clientID, req.toDomain())
	if err != nil {
		status, msg := errorStatus(err)
		if status >= http.StatusInternalServerError {
			c.Log.ErrorContext(ctx.Request.Context(), "banner generation request failed",
				"error", err,
				"client_id", clientID)
		}
		ctx.JSON(status, ErrorResponse{Error: msg})
		return
	}

	ctx.JSON(http.StatusOK, GenerateResponse{
		Image:        res.Image.DataURL(),
		FileName:     res.Image.FileName(req.Name),
		Count:        res.Count,
		QuotaSkipped: res.QuotaSkipped,
		ArchiveURL:   res.ArchiveURL,
	})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnknownStyle):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrLimitReached):
		return http.StatusForbidden, domain.LimitReachedMessage
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, "usage service unavailable"
	case errors.Is(err, domain.ErrGenerationFailed):
		return http.StatusBadGateway, domain.GenerationFailedMessage
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
