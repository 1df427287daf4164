package middleware

import (
	"net/http"
	"testing"
)

func TestPolicyRequired(t *testing.T) {
	policy := NewPolicy([]Rule{
		{Method: "*", Pattern: "/auth/**", Access: AccessPublic},
		{Method: http.MethodPost, Pattern: "/users/register", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/listings/**", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/listings/**", Access: AccessAuthenticated}, // shadowed
	})

	tests := []struct {
		name   string
		method string
		path   string
		want   Access
	}{
		{"wildcard method matches", http.MethodPost, "/auth/login", AccessPublic},
		{"prefix matches the prefix itself", http.MethodGet, "/auth", AccessPublic},
		{"prefix matches nested path", http.MethodGet, "/auth/login/extra", AccessPublic},
		{"prefix does not match sibling", http.MethodGet, "/authx", AccessAuthenticated},
		{"exact match", http.MethodPost, "/users/register", AccessPublic},
		{"exact match wrong method", http.MethodGet, "/users/register", AccessAuthenticated},
		{"method is case-insensitive", "post", "/users/register", AccessPublic},
		{"first match wins", http.MethodGet, "/listings/abc", AccessPublic},
		{"write to read-public resource", http.MethodPost, "/listings", AccessAuthenticated},
		{"no match defaults to authenticated", http.MethodGet, "/users", AccessAuthenticated},
		{"options is always public", http.MethodOptions, "/users", AccessPublic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Required(tt.method, tt.path); got != tt.want {
				t.Errorf("Required(%s %s) = %v, want %v", tt.method, tt.path, got, tt.want)
			}
		})
	}
}

func TestPolicyAllows(t *testing.T) {
	policy := NewPolicy(DefaultRules())

	if !policy.Allows(http.MethodPost, "/auth/login") {
		t.Error("expected /auth/login to be public")
	}
	if !policy.Allows(http.MethodGet, "/listings") {
		t.Error("expected listing reads to be public")
	}
	if policy.Allows(http.MethodPost, "/listings") {
		t.Error("expected listing writes to require authentication")
	}
	if policy.Allows(http.MethodGet, "/users") {
		t.Error("expected user management to require authentication")
	}
}

func TestEmptyPolicyDefaultsToAuthenticated(t *testing.T) {
	policy := NewPolicy(nil)

	if policy.Allows(http.MethodGet, "/anything") {
		t.Error("expected empty policy to require authentication")
	}
	if !policy.Allows(http.MethodOptions, "/anything") {
		t.Error("expected OPTIONS to stay public under empty policy")
	}
}
