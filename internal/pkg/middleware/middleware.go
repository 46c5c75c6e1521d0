package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stayhub/service-booking/internal/pkg/auth"
	"github.com/stayhub/service-booking/internal/pkg/response"
)

const (
	ctxIdentityKey  = "auth_identity"
	requestIDHeader = "X-Request-ID"
)

// AuthMiddleware validates the bearer token and stores the caller identity
// on the gin context.
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "malformed authorization header")
			c.Abort()
			return
		}

		identity, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ctxIdentityKey, *identity)
		c.Next()
	}
}

// RequireRole rejects callers whose role does not match.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || identity.Role != role {
			response.Forbidden(c, "insufficient privileges")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity returns the authenticated identity stored by AuthMiddleware.
func GetIdentity(c *gin.Context) (*auth.Identity, bool) {
	v, exists := c.Get(ctxIdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(auth.Identity)
	if !ok {
		return nil, false
	}
	return &identity, true
}

// GetUserID returns the authenticated caller's user ID.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	identity, ok := GetIdentity(c)
	if !ok {
		return uuid.Nil, false
	}
	return identity.UserID, true
}

// GetUserRole returns the authenticated caller's role.
func GetUserRole(c *gin.Context) (string, bool) {
	identity, ok := GetIdentity(c)
	if !ok {
		return "", false
	}
	return identity.Role, true
}

// LoggerMiddleware logs each request with latency and status.
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.Writer.Header().Get(requestIDHeader)),
		)
	}
}

// RecoveryMiddleware converts panics into 500 responses without leaking detail.
func RecoveryMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				response.InternalError(c)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RequestIDMiddleware assigns each request a unique ID, honoring an inbound one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// CORSMiddleware applies the shared CORS policy.
func CORSMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", requestIDHeader)
	return cors.New(cfg)
}

// SecurityHeadersMiddleware sets baseline security response headers.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "no-referrer")
		c.Next()
	}
}
