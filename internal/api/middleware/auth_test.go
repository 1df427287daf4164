package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/morada-labs/morada/internal/api/auth"
	"github.com/morada-labs/morada/pkg/listing/models"
)

const testSecret = "test-secret-that-is-at-least-32-characters-long"

// fakeResolver serves principals from a map keyed by email.
type fakeResolver struct {
	users map[string]*models.User
}

func (f *fakeResolver) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

type authTestEnv struct {
	jwtService *auth.JWTService
	resolver   *fakeResolver
	handler    http.Handler

	// captured identity from the last request that reached the handler
	seen *Identity
	hits int
}

func newAuthTestEnv(t *testing.T, rules []Rule, exempt []string) *authTestEnv {
	t.Helper()

	jwtService, err := auth.NewJWTService(auth.JWTConfig{Secret: testSecret})
	if err != nil {
		t.Fatalf("failed to create JWT service: %v", err)
	}

	env := &authTestEnv{
		jwtService: jwtService,
		resolver: &fakeResolver{users: map[string]*models.User{
			"alice@example.com": {Name: "Alice", Email: "alice@example.com", Role: "agent"},
			"root@example.com":  {Name: "Root", Email: "root@example.com", Role: "admin"},
		}},
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.hits++
		env.seen = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	env.handler = Authenticate(jwtService, env.resolver, NewPolicy(rules), exempt)(inner)
	return env
}

func (env *authTestEnv) request(t *testing.T, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	env.seen = nil
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func (env *authTestEnv) tokenFor(t *testing.T, email string) string {
	t.Helper()
	user := env.resolver.users[email]
	if user == nil {
		user = &models.User{Name: "Ghost", Email: email, Role: "agent"}
	}
	issued, err := env.jwtService.Issue(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return issued.Token
}

func assertUnauthenticatedBody(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body["error"] != "unauthenticated" {
		t.Errorf("expected error code 'unauthenticated', got %q", body["error"])
	}
}

func TestAuthenticateProtectedPath(t *testing.T) {
	env := newAuthTestEnv(t, DefaultRules(), nil)

	t.Run("no credential is rejected", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/users", "")
		assertUnauthenticatedBody(t, rec)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/users", env.tokenFor(t, "alice@example.com"))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if env.seen == nil {
			t.Fatal("expected identity in context")
		}
		if env.seen.Subject != "alice@example.com" || env.seen.Role != "agent" || env.seen.Name != "Alice" {
			t.Errorf("unexpected identity %+v", env.seen)
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/users", "not-a-token")
		assertUnauthenticatedBody(t, rec)
	})

	t.Run("vanished principal is rejected", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/users", env.tokenFor(t, "ghost@example.com"))
		assertUnauthenticatedBody(t, rec)
	})

	t.Run("rejection bodies are identical across causes", func(t *testing.T) {
		missing := env.request(t, http.MethodGet, "/users", "")
		garbage := env.request(t, http.MethodGet, "/users", "junk")
		vanished := env.request(t, http.MethodGet, "/users", env.tokenFor(t, "ghost@example.com"))

		if missing.Body.String() != garbage.Body.String() ||
			garbage.Body.String() != vanished.Body.String() {
			t.Error("expected identical 401 bodies for all rejection causes")
		}
	})
}

func TestAuthenticatePublicPath(t *testing.T) {
	env := newAuthTestEnv(t, DefaultRules(), nil)

	t.Run("anonymous passes", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/listings", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if env.seen != nil {
			t.Error("expected no identity for anonymous request")
		}
	})

	t.Run("valid token still attaches identity", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/listings", env.tokenFor(t, "alice@example.com"))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if env.seen == nil || env.seen.Subject != "alice@example.com" {
			t.Error("expected identity on public path with valid token")
		}
	})

	t.Run("invalid token proceeds anonymously", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/listings", "expired-or-garbage")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected public path to succeed with bad token, got %d", rec.Code)
		}
		if env.seen != nil {
			t.Error("expected no identity after failed verification")
		}
	})

	t.Run("options preflight is always public", func(t *testing.T) {
		rec := env.request(t, http.MethodOptions, "/users", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected preflight to pass, got %d", rec.Code)
		}
	})
}

func TestAuthenticateExemptPrefix(t *testing.T) {
	env := newAuthTestEnv(t, nil, []string{"/auth/"})

	rec := env.request(t, http.MethodPost, "/auth/login", "garbage-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected exempt path to bypass verification, got %d", rec.Code)
	}
	if env.seen != nil {
		t.Error("expected no identity on exempt path")
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:        testSecret,
		TokenDuration: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("failed to create JWT service: %v", err)
	}

	resolver := &fakeResolver{users: map[string]*models.User{
		"alice@example.com": {Name: "Alice", Email: "alice@example.com", Role: "agent"},
	}}
	handler := Authenticate(jwtService, resolver, NewPolicy(nil), nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	issued, err := jwtService.Issue(resolver.users["alice@example.com"])
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+issued.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assertUnauthenticatedBody(t, rec)
}

func TestAuthenticateIdempotent(t *testing.T) {
	env := newAuthTestEnv(t, nil, nil)

	preset := &Identity{Subject: "preset@example.com", Role: "admin", Name: "Preset"}
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req = req.WithContext(WithIdentity(req.Context(), preset))
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected pre-authenticated request to pass, got %d", rec.Code)
	}
	if env.seen != preset {
		t.Error("expected existing identity to be preserved")
	}
}

func TestRequireAdmin(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAdmin()(inner)

	t.Run("anonymous gets 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("agent gets 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req = req.WithContext(WithIdentity(req.Context(), &Identity{Subject: "a", Role: "agent"}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req = req.WithContext(WithIdentity(req.Context(), &Identity{Subject: "r", Role: "admin"}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}
