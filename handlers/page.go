package handlers

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hutchinsdata/site/internal/content"
	"github.com/hutchinsdata/site/internal/render"
	"github.com/hutchinsdata/site/pkg/logger"
	"github.com/hutchinsdata/site/pkg/middleware"
)

// PageSource yields the landing page content. Implementations never fail:
// missing content comes back as nil sections.
type PageSource interface {
	FetchPage(ctx context.Context, preview bool) *content.PageData
}

type PageHandler struct {
	src      PageSource
	renderer *render.Renderer
}

func NewPageHandler(src PageSource, r *render.Renderer) *PageHandler {
	return &PageHandler{src: src, renderer: r}
}

// Register mounts the page routes. rg should carry the preview middleware.
func (h *PageHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/", h.Page)
	rg.GET("/api/page", h.PageJSON)
}

func cacheHeaders(c *gin.Context, preview bool) {
	if preview {
		c.Header("Cache-Control", "private, no-store")
		c.Header("X-Robots-Tag", "noindex")
		return
	}
	c.Header("Cache-Control", "public, max-age=0, must-revalidate")
}

func (h *PageHandler) Page(c *gin.Context) {
	preview := middleware.IsPreview(c)
	page := h.src.FetchPage(c.Request.Context(), preview)

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page, preview); err != nil {
		logger.Errorf("render page: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	cacheHeaders(c, preview)
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// PageJSON returns the raw section bundles, nil sections included.
func (h *PageHandler) PageJSON(c *gin.Context) {
	preview := middleware.IsPreview(c)
	page := h.src.FetchPage(c.Request.Context(), preview)
	if page == nil {
		page = &content.PageData{}
	}
	cacheHeaders(c, preview)
	c.JSON(http.StatusOK, page)
}
