package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hutchinsdata/site/internal/contact"
	"github.com/hutchinsdata/site/internal/contact/service"
	"github.com/hutchinsdata/site/pkg/logger"
	"github.com/hutchinsdata/site/pkg/metrics"
)

// Submitter records contact form submissions.
type Submitter interface {
	Submit(ctx context.Context, in service.Input, meta service.Meta) (*contact.Submission, error)
}

type ContactHandler struct {
	svc Submitter
}

func NewContactHandler(svc Submitter) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Register mounts POST /api/contact behind the given middleware (rate limiting).
func (h *ContactHandler) Register(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	rg.POST("/api/contact", append(mw, h.Submit)...)
}

const genericContactError = "Something went wrong. Please try again."

func (h *ContactHandler) Submit(c *gin.Context) {
	var in service.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		metrics.ContactSubmissions.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericContactError})
		return
	}
	sub, err := h.svc.Submit(c.Request.Context(), in, service.Meta{
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	switch {
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrInvalidEmail):
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		logger.Errorf("contact: %v", err)
		metrics.ContactSubmissions.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericContactError})
		return
	}
	logger.Debugf("contact submission %s stored", sub.ID)
	metrics.ContactSubmissions.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
