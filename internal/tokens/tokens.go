package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hutchinsdata/site/internal/config"
	"github.com/hutchinsdata/site/pkg/middleware"
)

// PreviewScope is the scope claim carried by draft preview tokens.
const PreviewScope = "preview"

// ErrNoSecret is returned when preview signing is not configured.
var ErrNoSecret = errors.New("tokens: preview secret not configured")

// GeneratePreviewToken creates a signed JWT granting draft preview to editor.
func GeneratePreviewToken(cfg config.PreviewConfig, editor string) (string, error) {
	if cfg.Secret == "" {
		return "", ErrNoSecret
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   editor,
		"scope": PreviewScope,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.Secret))
}

type token struct {
	claims jwt.MapClaims
}

// Claims decodes the verified claims into v.
func (t *token) Claims(v interface{}) error {
	b, err := json.Marshal(t.claims)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Verifier checks preview tokens. It satisfies middleware.Verifier.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier { return &Verifier{secret: []byte(secret)} }

func (v *Verifier) Verify(_ context.Context, raw string) (middleware.Token, error) {
	if len(v.secret) == 0 {
		return nil, ErrNoSecret
	}
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("tokens: invalid token")
	}
	if claims["scope"] != PreviewScope {
		return nil, fmt.Errorf("tokens: not a preview token")
	}
	return &token{claims: claims}, nil
}
