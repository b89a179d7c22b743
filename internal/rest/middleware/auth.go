package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jurisflow/jurisflow/internal/auth"
	"github.com/jurisflow/jurisflow/internal/config"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/service"
	"github.com/jurisflow/jurisflow/internal/types"
)

// AuthenticateMiddleware authenticates requests based on either:
// 1. JWT token in the Authorization header as a Bearer token
// 2. API key in the configured header
// The token subject is then resolved to a profile, which puts the
// tenant id, user id and permission tier into the request context.
func AuthenticateMiddleware(cfg *config.Configuration, sessionService service.SessionService, logger *logger.Logger) gin.HandlerFunc {
	authProvider := auth.NewProvider(cfg)

	return func(c *gin.Context) {
		// First check for API key
		apiKeyHeader := c.GetHeader(cfg.Auth.APIKey.Header)
		if apiKeyHeader != "" {
			tenantID, userID, valid := auth.ValidateAPIKey(cfg, apiKeyHeader)
			if !valid || tenantID == "" || userID == "" {
				logger.Debugw("invalid api key")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
				c.Abort()
				return
			}

			// Machine keys are firm level credentials and act as admin
			ctx := c.Request.Context()
			ctx = types.SetTenantID(ctx, tenantID)
			ctx = types.SetUserID(ctx, userID)
			ctx = types.SetPermissionTier(ctx, types.PermissionTierAdmin)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
			return
		}

		// If no API key, check for JWT token
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authProvider.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debugw("failed to validate token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if claims == nil || claims.UserID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		// Resolve the token subject to a profile. The profile, not the
		// token, decides tenant membership and tier.
		ctx, _, err := sessionService.ResolveSession(c.Request.Context(), claims.UserID)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
