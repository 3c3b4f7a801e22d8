package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

const previewKey = "preview"

// previewToken extracts a preview token from ?preview= or an Authorization
// Bearer header.
func previewToken(c *gin.Context) (string, bool) {
	if t := c.Query("preview"); t != "" {
		return t, true
	}
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return "", false
	}
	t, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		// present but malformed
		return "", true
	}
	return strings.TrimSpace(t), true
}

// PreviewMiddleware switches a request to draft preview when it carries a
// valid preview token. Requests without a token pass through as published
// reads; a token that fails verification is rejected with 401. A nil
// verifier disables preview entirely.
func PreviewMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, present := previewToken(c)
		if !present || ver == nil {
			c.Next()
			return
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}
		tok, err := ver.Verify(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid preview token"})
			return
		}

		var claims map[string]interface{}
		if err := tok.Claims(&claims); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "failed to parse claims"})
			return
		}
		c.Set("claims", claims)
		c.Set(previewKey, true)
		c.Next()
	}
}

// IsPreview reports whether PreviewMiddleware accepted a preview token.
func IsPreview(c *gin.Context) bool {
	return c.GetBool(previewKey)
}
