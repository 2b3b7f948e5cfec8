package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/allisson/pantoken/internal/httputil"
)

// AdminKeyHeader is the header carrying the admin API key.
const AdminKeyHeader = "X-Admin-Api-Key"

// AdminCredentialMiddleware extracts the admin credential from the request.
//
// The credential is read from the X-Admin-Api-Key header, falling back to an
// "Authorization: Bearer <key>" header (case-insensitive scheme). A request without
// either is rejected with 401 before any handler runs.
//
// The middleware does not compare the credential: the use case verifies it in constant
// time before touching the record store. Handlers read it back with GetAdminCredential.
func AdminCredentialMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential, ok := extractAdminCredential(c)
		if !ok {
			httputil.HandleUnauthorizedGin(c, logger)
			return
		}

		ctx := WithAdminCredential(c.Request.Context(), credential)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func extractAdminCredential(c *gin.Context) (string, bool) {
	if key := c.GetHeader(AdminKeyHeader); key != "" {
		return key, true
	}

	authHeader := c.GetHeader("Authorization")
	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	key := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if key == "" {
		return "", false
	}
	return key, true
}
