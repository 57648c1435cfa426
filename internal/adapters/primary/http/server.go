package server

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/admin/web-apps/banner-ai/internal/adapters/primary/http/middlewares"
	"github.com/admin/web-apps/banner-ai/internal/pkg/clientip"
)

// Префиксы, под которыми доступны маршруты: корень, /api (express) и serverless функция
var defaultBasePaths = []string{"", "/api", "/.netlify/functions/api"}

type Config struct {
	Host                    string        `envconfig:"HOST"`
	Port                    string        `envconfig:"PORT" default:"3000"`
	WriteTimeout            time.Duration `envconfig:"WRITE_TIMEOUT" default:"90s"`
	ReadTimeout             time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	ReadHeaderTimeout       time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"3s"`
	IdleTimeout             time.Duration `envconfig:"IDLE_TIMEOUT" default:"15s"`
	MaxBodyBytes            int64         `envconfig:"MAX_BODY_BYTES" default:"1048576"`
	TrustedProxies          []string      `envconfig:"TRUSTED_PROXIES"`
	EnableLoggingMiddleware bool          `envconfig:"ENABLE_LOGGING_MIDDLEWARE" default:"true"`
}

type Controller interface {
	RegisterRoutes(router gin.IRouter)
}

func NewHTTPServer(
	cfg *Config,
	logger *slog.Logger,
	controllers ...Controller,
) (*http.Server, error) {
	router, err := NewRouter(cfg, logger, controllers...)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Handler:           router,
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return server, nil
}

// NewRouter собирает gin.Engine с middlewares и маршрутами всех контроллеров
func NewRouter(cfg *Config, logger *slog.Logger, controllers ...Controller) (*gin.Engine, error) {
	trusted, err := clientip.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	router.Use(
		middlewares.RequestID(),
		middlewares.RecoveryLogger(logger),
		middlewares.ClientID(clientip.Resolver{TrustedProxies: trusted}),
		middlewares.BodyLimit(cfg.MaxBodyBytes),
	)
	if cfg.EnableLoggingMiddleware {
		router.Use(middlewares.RequestLogger(logger))
	}

	// Регистрируем маршруты всех контроллеров под каждым префиксом
	for _, base := range defaultBasePaths {
		var group gin.IRouter = router
		if base != "" {
			group = router.Group(strings.TrimSuffix(base, "/"))
		}
		for _, controller := range controllers {
			controller.RegisterRoutes(group)
		}
	}

	return router, nil
}
