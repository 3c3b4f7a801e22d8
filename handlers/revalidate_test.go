package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/hutchinsdata/site/internal/cache"
	"github.com/hutchinsdata/site/internal/gateway"
	"github.com/hutchinsdata/site/pkg/metrics"
)

func init() { gin.SetMode(gin.TestMode) }

type failingRevalidator struct{}

func (failingRevalidator) Revalidate(context.Context, string) error { return errors.New("redis down") }

func revalidateEngine(secret string, rv Revalidator) *gin.Engine {
	g := gin.New()
	h := NewRevalidateHandler(secret, rv)
	h.now = func() time.Time { return time.UnixMilli(1700000000123) }
	h.Register(g.Group(""))
	return g
}

func postRevalidate(g *gin.Engine, secret *string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/revalidate", nil)
	if secret != nil {
		req.Header.Set(WebhookSecretHeader, *secret)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func seededGateway(t *testing.T) (*gateway.Gateway, *cache.MemoryStore) {
	t.Helper()
	store := cache.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "a", []byte(`1`), time.Minute, []string{gateway.DefaultTag}))
	require.NoError(t, store.Set(ctx, "b", []byte(`2`), time.Minute, []string{"other"}))
	return gateway.New(nil, store, gateway.Options{}), store
}

func TestRevalidate_CorrectSecret(t *testing.T) {
	gw, store := seededGateway(t)
	g := revalidateEngine("s3cret", gw)
	before := testutil.ToFloat64(metrics.Revalidations.WithLabelValues("ok"))

	secret := "s3cret"
	w := postRevalidate(g, &secret)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, true, body["revalidated"])
	require.Equal(t, float64(1700000000123), body["now"])

	require.Equal(t, 1, store.Len())
	_, ok, _ := store.Get(context.Background(), "b")
	require.True(t, ok)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.Revalidations.WithLabelValues("ok")))

	// invalidating again is harmless
	w = postRevalidate(g, &secret)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, store.Len())
}

func TestRevalidate_RejectsBadSecretWithoutSideEffects(t *testing.T) {
	wrong, empty := "nope", ""
	for _, tc := range []struct {
		name   string
		server string
		sent   *string
	}{
		{"wrong", "s3cret", &wrong},
		{"absent", "s3cret", nil},
		{"empty header", "s3cret", &empty},
		{"server secret unset", "", &empty},
	} {
		t.Run(tc.name, func(t *testing.T) {
			gw, store := seededGateway(t)
			w := postRevalidate(revalidateEngine(tc.server, gw), tc.sent)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.JSONEq(t, `{"error":"Invalid secret"}`, w.Body.String())
			require.Equal(t, 2, store.Len())
		})
	}
}

func TestRevalidate_Failure(t *testing.T) {
	secret := "s3cret"
	w := postRevalidate(revalidateEngine(secret, failingRevalidator{}), &secret)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"Revalidation failed"}`, w.Body.String())
}
