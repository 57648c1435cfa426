package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/admin/web-apps/banner-ai/internal/pkg/clientip"
	"github.com/admin/web-apps/banner-ai/internal/pkg/logger"
)

const (
	HeaderRequestID = "X-Request-ID"
	clientIDKey     = "client_id"
)

// RequestID берёт X-Request-ID из запроса или генерирует новый и кладёт его в контекст логгера
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// ClientID вычисляет идентификатор клиента для учёта генераций
func ClientID(resolver clientip.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(clientIDKey, resolver.Resolve(c.GetHeader(clientip.HeaderForwardedFor), c.Request.RemoteAddr))
		c.Next()
	}
}

// GetClientID client_id текущего запроса, "unknown" если middleware не отработал
func GetClientID(c *gin.Context) string {
	if id := c.GetString(clientIDKey); id != "" {
		return id
	}
	return clientip.Unknown
}

// BodyLimit ограничивает размер тела запроса
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
