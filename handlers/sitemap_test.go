package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestSitemap(t *testing.T) {
	g := gin.New()
	h := NewSitemapHandler("https://hutchinsdatastrategy.com")
	h.now = func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }
	h.Register(g.Group(""))

	w := get(g, "/sitemap.xml")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/xml"))
	body := w.Body.String()
	require.Contains(t, body, "<loc>https://hutchinsdatastrategy.com/#speaking</loc>")
	require.Contains(t, body, "<lastmod>2026-01-02T00:00:00Z</lastmod>")
	require.Equal(t, 6, strings.Count(body, "<url>"))
}
