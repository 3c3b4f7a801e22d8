package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hutchinsdata/site/internal/contact"
	"github.com/hutchinsdata/site/internal/contact/repository"
	"github.com/hutchinsdata/site/internal/contact/service"
	"github.com/hutchinsdata/site/pkg/middleware"
)

type brokenRepo struct{ repository.MemoryRepo }

func (*brokenRepo) Save(context.Context, *contact.Submission) error { return errors.New("mongo down") }

func contactEngine(svc Submitter, mw ...gin.HandlerFunc) *gin.Engine {
	g := gin.New()
	NewContactHandler(svc).Register(g.Group(""), mw...)
	return g
}

func postContact(g *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestContact_Responses(t *testing.T) {
	repo := repository.NewMemoryRepo()
	g := contactEngine(service.New(repo))

	cases := []struct {
		name string
		body string
		code int
		want string
	}{
		{"ok", `{"name":"Ada","email":"ada@example.com","message":"Hi"}`, 200, `{"success":true}`},
		{"missing", `{"name":"Ada","email":"ada@example.com"}`, 400, `{"error":"Name, email, and message are required."}`},
		{"bad email", `{"name":"Ada","email":"ada@example","message":"Hi"}`, 400, `{"error":"Please provide a valid email address."}`},
		{"malformed", `{"name":`, 500, `{"error":"Something went wrong. Please try again."}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postContact(g, tc.body)
			require.Equal(t, tc.code, w.Code)
			require.JSONEq(t, tc.want, w.Body.String())
		})
	}

	subs, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, "ada@example.com", subs[0].Email)
	require.NotEmpty(t, subs[0].ClientIP)
}

func TestContact_StorageFailure(t *testing.T) {
	g := contactEngine(service.New(&brokenRepo{}))
	w := postContact(g, `{"name":"Ada","email":"ada@example.com","message":"Hi"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"Something went wrong. Please try again."}`, w.Body.String())
}

func TestContact_RateLimited(t *testing.T) {
	g := contactEngine(service.New(repository.NewMemoryRepo()), middleware.RateLimitMiddleware(0.001, 1))
	body := `{"name":"Ada","email":"ada@example.com","message":"Hi"}`
	require.Equal(t, http.StatusOK, postContact(g, body).Code)
	require.Equal(t, http.StatusTooManyRequests, postContact(g, body).Code)
}
