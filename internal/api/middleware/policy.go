package middleware

import (
	"net/http"
	"strings"
)

// Access is the level of authentication a policy rule demands.
type Access string

const (
	// AccessPublic allows anonymous requests.
	AccessPublic Access = "public"

	// AccessAuthenticated requires a verified identity.
	AccessAuthenticated Access = "authenticated"
)

// Rule matches requests by method and path pattern.
//
// Method is an HTTP method or "*" for any. Pattern is either an exact
// path or a prefix wildcard ending in "/**" which matches the prefix
// itself and everything below it.
type Rule struct {
	Method  string
	Pattern string
	Access  Access
}

// matches reports whether the rule applies to the given request.
func (r Rule) matches(method, path string) bool {
	if r.Method != "*" && !strings.EqualFold(r.Method, method) {
		return false
	}

	if prefix, ok := strings.CutSuffix(r.Pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == r.Pattern
}

// Policy decides which requests may proceed anonymously. It is built
// once at startup and read-only afterwards.
//
// Rules are evaluated in order and the first match wins. CORS preflight
// (OPTIONS) is always public. Requests matching no rule require an
// authenticated identity.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from an ordered rule list.
func NewPolicy(rules []Rule) *Policy {
	return &Policy{rules: rules}
}

// Allows reports whether an anonymous request to method/path may proceed.
func (p *Policy) Allows(method, path string) bool {
	return p.Required(method, path) == AccessPublic
}

// Required returns the access level demanded for method/path.
func (p *Policy) Required(method, path string) Access {
	if method == http.MethodOptions {
		return AccessPublic
	}
	for _, rule := range p.rules {
		if rule.matches(method, path) {
			return rule.Access
		}
	}
	return AccessAuthenticated
}

// DefaultRules returns the rule set used when none is configured:
// authentication endpoints and self-registration are public, catalog
// and listing reads are public, everything else requires a login.
func DefaultRules() []Rule {
	return []Rule{
		{Method: "*", Pattern: "/auth/**", Access: AccessPublic},
		{Method: http.MethodPost, Pattern: "/users/register", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/listings/**", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/neighborhoods/**", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/property-types/**", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/health/**", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/health", Access: AccessPublic},
	}
}
