// Package auth maps dashboard API keys to principals and gates routes on
// role capability checks.
package auth

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/samber/lo"
)

// Roles known to the dashboard.
const (
	RoleAdmin     = "admin"
	RoleHR        = "hr"
	RoleCandidate = "candidate"
)

// Context key under which the authenticated principal is stored.
const principalContextKey = "auth_principal"

// Principal is the authenticated caller.
type Principal struct {
	UserID string
	Name   string
	Roles  []string
}

// HasAnyRole reports whether the principal holds at least one of the given
// roles. Landing-page routing and route gating are capability checks, never
// comparisons against a single role string.
func (p *Principal) HasAnyRole(roles ...string) bool {
	if p == nil {
		return false
	}
	return lo.SomeBy(roles, func(r string) bool {
		return lo.Contains(p.Roles, r)
	})
}

// FromContext returns the principal stored by the auth middleware, or nil
// on unauthenticated requests.
func FromContext(c *app.RequestContext) *Principal {
	v, ok := c.Get(principalContextKey)
	if !ok {
		return nil
	}
	p, ok := v.(*Principal)
	if !ok {
		return nil
	}
	return p
}

// storePrincipal attaches the principal to the request context.
func storePrincipal(c *app.RequestContext, p *Principal) {
	c.Set(principalContextKey, p)
}
