package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hutchinsdata/site/internal/gateway"
	"github.com/hutchinsdata/site/pkg/logger"
	"github.com/hutchinsdata/site/pkg/metrics"
)

// WebhookSecretHeader carries the shared secret configured on the content
// store's webhook.
const WebhookSecretHeader = "x-sanity-webhook-secret"

// Revalidator drops cached content for a tag.
type Revalidator interface {
	Revalidate(ctx context.Context, tag string) error
}

type RevalidateHandler struct {
	secret string
	rv     Revalidator
	now    func() time.Time
}

func NewRevalidateHandler(secret string, rv Revalidator) *RevalidateHandler {
	return &RevalidateHandler{secret: secret, rv: rv, now: time.Now}
}

func (h *RevalidateHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/api/revalidate", h.Revalidate)
}

// validSecret reports whether got matches the configured secret. An empty
// configured secret accepts nothing.
func (h *RevalidateHandler) validSecret(got string) bool {
	if h.secret == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}

// Revalidate invalidates every entry tagged "sanity" once the webhook secret checks out.
func (h *RevalidateHandler) Revalidate(c *gin.Context) {
	if !h.validSecret(c.GetHeader(WebhookSecretHeader)) {
		metrics.Revalidations.WithLabelValues("unauthorized").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid secret"})
		return
	}
	if err := h.rv.Revalidate(c.Request.Context(), gateway.DefaultTag); err != nil {
		logger.Errorf("revalidate: %v", err)
		metrics.Revalidations.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Revalidation failed"})
		return
	}
	metrics.Revalidations.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"revalidated": true, "now": h.now().UnixMilli()})
}
