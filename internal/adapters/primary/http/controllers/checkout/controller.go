package checkoutController

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admin/web-apps/banner-ai/internal/domain"
	"github.com/admin/web-apps/banner-ai/internal/ports/usecase"
)

type Controller struct {
	CheckoutService usecase.ICheckoutUseCase
	Log             *slog.Logger
}

func New(checkoutService usecase.ICheckoutUseCase, log *slog.Logger) *Controller {
	return &Controller{
		CheckoutService: checkoutService,
		Log:             log,
	}
}

func (c *Controller) RegisterRoutes(router gin.IRouter) {
	router.POST("/create-checkout-session", c.handleCreateSession)
}

func (c *Controller) handleCreateSession(ctx *gin.Context) {
	var req CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.WarnContext(ctx.Request.Context(), "failed to bind checkout request", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	session, err := c.CheckoutService.CreateSession(ctx.Request.Context(), domain.Plan(req.Plan))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCheckoutConfig):
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			c.Log.ErrorContext(ctx.Request.Context(), "failed to create checkout session",
				"error", err,
				"plan", req.Plan)
			ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, CreateSessionResponse{URL: session.URL})
}
