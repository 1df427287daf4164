package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/morada-labs/morada/pkg/listing/models"
)

const testSecret = "test-secret-that-is-at-least-32-characters-long"

func newTestService(t *testing.T, config JWTConfig) *JWTService {
	t.Helper()
	if config.Secret == "" {
		config.Secret = testSecret
	}
	service, err := NewJWTService(config)
	if err != nil {
		t.Fatalf("failed to create JWT service: %v", err)
	}
	return service
}

func testUser() *models.User {
	return &models.User{
		ID:    "user-1",
		Name:  "Alice Agent",
		Email: "alice@example.com",
		Role:  "agent",
	}
}

func TestNewJWTService(t *testing.T) {
	t.Run("rejects short secret", func(t *testing.T) {
		_, err := NewJWTService(JWTConfig{Secret: "too-short"})
		if !errors.Is(err, ErrWeakSecret) {
			t.Errorf("expected ErrWeakSecret, got %v", err)
		}
	})

	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := NewJWTService(JWTConfig{})
		if !errors.Is(err, ErrWeakSecret) {
			t.Errorf("expected ErrWeakSecret, got %v", err)
		}
	})

	t.Run("accepts 32-char secret", func(t *testing.T) {
		_, err := NewJWTService(JWTConfig{Secret: strings.Repeat("a", 32)})
		if err != nil {
			t.Errorf("expected 32-char secret to be accepted, got %v", err)
		}
	})

	t.Run("applies defaults", func(t *testing.T) {
		service := newTestService(t, JWTConfig{})
		if service.GetTokenDuration() != DefaultTokenDuration {
			t.Errorf("expected default duration %v, got %v", DefaultTokenDuration, service.GetTokenDuration())
		}
	})
}

func TestIssueAndVerify(t *testing.T) {
	service := newTestService(t, JWTConfig{})
	user := testUser()

	issued, err := service.Issue(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if issued.TokenType != "Bearer" {
		t.Errorf("expected Bearer token type, got %q", issued.TokenType)
	}
	if issued.ExpiresIn != int64((24 * time.Hour).Seconds()) {
		t.Errorf("expected 24h expires_in, got %d", issued.ExpiresIn)
	}

	claims, err := service.Verify(issued.Token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if claims.Subject != user.Email {
		t.Errorf("expected subject %q, got %q", user.Email, claims.Subject)
	}
	if claims.Role != "agent" {
		t.Errorf("expected role agent, got %q", claims.Role)
	}
	if claims.Name != "Alice Agent" {
		t.Errorf("expected name 'Alice Agent', got %q", claims.Name)
	}
}

func TestVerifyMalformed(t *testing.T) {
	service := newTestService(t, JWTConfig{})

	for _, token := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := service.Verify(token); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Verify(%q): expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	service := newTestService(t, JWTConfig{})
	issued, err := service.Issue(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	// Flip the first character of the signature segment.
	parts := strings.Split(issued.Token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := service.Verify(tampered); !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Errorf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := newTestService(t, JWTConfig{})
	verifier := newTestService(t, JWTConfig{Secret: strings.Repeat("b", 32)})

	issued, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := verifier.Verify(issued.Token); !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Errorf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestVerifyExpiryBoundary(t *testing.T) {
	service := newTestService(t, JWTConfig{TokenDuration: time.Second})

	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issuedAt }

	issued, err := service.Issue(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	t.Run("valid just before expiry", func(t *testing.T) {
		service.now = func() time.Time { return issuedAt.Add(999 * time.Millisecond) }
		if _, err := service.Verify(issued.Token); err != nil {
			t.Errorf("expected token valid at 999ms, got %v", err)
		}
	})

	t.Run("expired at exactly expiry instant", func(t *testing.T) {
		service.now = func() time.Time { return issuedAt.Add(time.Second) }
		if _, err := service.Verify(issued.Token); !errors.Is(err, ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired at exact expiry, got %v", err)
		}
	})

	t.Run("expired after expiry", func(t *testing.T) {
		service.now = func() time.Time { return issuedAt.Add(time.Hour) }
		if _, err := service.Verify(issued.Token); !errors.Is(err, ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})
}

func TestVerifyEmptySubject(t *testing.T) {
	service := newTestService(t, JWTConfig{})

	issued, err := service.Issue(&models.User{Name: "No Email", Role: "agent"})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := service.Verify(issued.Token); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("expected ErrTokenMalformed for empty subject, got %v", err)
	}
}
