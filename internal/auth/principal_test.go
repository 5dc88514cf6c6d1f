package auth

import (
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/stretchr/testify/assert"
)

func TestHasAnyRole(t *testing.T) {
	p := &Principal{UserID: "u1", Name: "Alex", Roles: []string{RoleHR}}

	assert.True(t, p.HasAnyRole(RoleHR))
	assert.True(t, p.HasAnyRole(RoleAdmin, RoleHR))
	assert.False(t, p.HasAnyRole(RoleAdmin))
	assert.False(t, p.HasAnyRole(RoleCandidate))
	assert.False(t, p.HasAnyRole())
}

func TestHasAnyRoleNilPrincipal(t *testing.T) {
	var p *Principal
	assert.False(t, p.HasAnyRole(RoleAdmin))
}

func TestPrincipalRoundTrip(t *testing.T) {
	c := app.NewContext(0)

	assert.Nil(t, FromContext(c))

	p := &Principal{UserID: "u1", Name: "Alex", Roles: []string{RoleAdmin, RoleHR}}
	storePrincipal(c, p)

	got := FromContext(c)
	assert.Equal(t, p, got)
	assert.True(t, got.HasAnyRole(RoleAdmin))
}
