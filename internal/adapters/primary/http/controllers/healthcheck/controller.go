package healthcheckController

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

const readyTimeout = 2 * time.Second

// Pinger зависимость, без которой сервис не готов принимать запросы
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthCheckController struct {
	app    string
	checks map[string]Pinger
	log    *slog.Logger
}

// New checks: имя зависимости -> проверка ("postgres", "redis")
func New(app string, checks map[string]Pinger, log *slog.Logger) *HealthCheckController {
	return &HealthCheckController{
		app:    app,
		checks: checks,
		log:    log,
	}
}

func (c *HealthCheckController) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", c.health)
	r.GET("/ready", c.ready)
}

// health базовая проверка (всегда возвращает 200)
func (c *HealthCheckController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": c.app,
	})
}

// ready пингует все зависимости
func (c *HealthCheckController) ready(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), readyTimeout)
	defer cancel()

	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := c.checks[name].Ping(pingCtx); err != nil {
			c.log.ErrorContext(ctx.Request.Context(), "dependency not ready", "dependency", name, "error", err)
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  name + " unavailable",
			})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}
