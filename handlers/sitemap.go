package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hutchinsdata/site/internal/sitemap"
	"github.com/hutchinsdata/site/pkg/logger"
)

type SitemapHandler struct {
	baseURL string
	now     func() time.Time
}

func NewSitemapHandler(baseURL string) *SitemapHandler {
	return &SitemapHandler{baseURL: baseURL, now: time.Now}
}

func (h *SitemapHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/sitemap.xml", h.Sitemap)
}

func (h *SitemapHandler) Sitemap(c *gin.Context) {
	var buf bytes.Buffer
	if err := sitemap.Build(h.baseURL, h.now()).Write(&buf); err != nil {
		logger.Errorf("sitemap: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}
