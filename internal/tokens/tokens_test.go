package tokens

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hutchinsdata/site/internal/config"
)

func previewCfg(secret string, ttl time.Duration) config.PreviewConfig {
	return config.PreviewConfig{Secret: secret, TTL: ttl}
}

func TestGeneratePreviewToken_ValidAndClaims(t *testing.T) {
	cfg := previewCfg("test-secret-32-bytes-should-be-long-enough", 2*time.Minute)
	tokenStr, err := GeneratePreviewToken(cfg, "editor@example.com")
	if err != nil {
		t.Fatalf("GeneratePreviewToken error: %v", err)
	}

	tok, err := NewVerifier(cfg.Secret).Verify(context.Background(), tokenStr)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	var claims map[string]interface{}
	if err := tok.Claims(&claims); err != nil {
		t.Fatalf("claims decode failed: %v", err)
	}
	if claims["sub"] != "editor@example.com" {
		t.Fatalf("unexpected sub claim: got=%v", claims["sub"])
	}
	if claims["scope"] != PreviewScope {
		t.Fatalf("unexpected scope claim: got=%v", claims["scope"])
	}
}

func TestGeneratePreviewToken_NoSecret(t *testing.T) {
	if _, err := GeneratePreviewToken(previewCfg("", time.Minute), "x"); err != ErrNoSecret {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
	if _, err := NewVerifier("").Verify(context.Background(), "a.b.c"); err != ErrNoSecret {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	secret := "another-secret-32-bytes-longgggg"
	claims := jwt.MapClaims{"sub": "u2", "scope": PreviewScope, "exp": time.Now().Add(-time.Minute).Unix()}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewVerifier(secret).Verify(context.Background(), tokenStr); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestVerify_WrongSecretFails(t *testing.T) {
	tokenStr, err := GeneratePreviewToken(previewCfg("secret-one-32-bytes-xxxxxxxxxxxxxxxx", time.Minute), "u3")
	if err != nil {
		t.Fatalf("GeneratePreviewToken error: %v", err)
	}
	if _, err := NewVerifier("different-secret-xxxxxxxxxxxxxxxx").Verify(context.Background(), tokenStr); err == nil {
		t.Fatalf("expected verify to fail with wrong secret")
	}
}

func TestVerify_RequiresPreviewScopeAndExpiry(t *testing.T) {
	secret := "scope-secret-32-bytes-xxxxxxxxxxxx"
	sign := func(c jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	v := NewVerifier(secret)
	if _, err := v.Verify(context.Background(), sign(jwt.MapClaims{"sub": "u", "exp": time.Now().Add(time.Minute).Unix()})); err == nil {
		t.Fatalf("expected token without scope to fail")
	}
	if _, err := v.Verify(context.Background(), sign(jwt.MapClaims{"sub": "u", "scope": PreviewScope})); err == nil {
		t.Fatalf("expected token without exp to fail")
	}
}

// Rejected when alg=none (unsigned token)
func TestVerify_AlgNoneRejected(t *testing.T) {
	payload := `{"sub":"u-none","scope":"preview","exp":9999999999}`
	headerEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payloadEnc := base64.RawURLEncoding.EncodeToString([]byte(payload))
	tok := headerEnc + "." + payloadEnc + "."
	if _, err := NewVerifier("x").Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected verify to reject alg=none token")
	}
}

// Tampering with payload must fail signature verification
func TestVerify_TamperedPayload(t *testing.T) {
	secret := "tamper-test-secret-32-bytes-xxxxxxx"
	tokenStr, err := GeneratePreviewToken(previewCfg(secret, 5*time.Minute), "user-t")
	if err != nil {
		t.Fatalf("GeneratePreviewToken error: %v", err)
	}
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, _ := base64.RawURLEncoding.DecodeString(parts[1])
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(strings.Replace(string(payloadBytes), "user-t", "attacker", 1)))
	if _, err := NewVerifier(secret).Verify(context.Background(), strings.Join(parts, ".")); err == nil {
		t.Fatalf("expected signature verification to fail for tampered token")
	}
}
