package auth

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"

	"recruit-go/internal/config"
	"recruit-go/internal/logger"
)

// APIKeyAuth builds the dashboard authentication middleware. Keys arrive in
// the X-API-Key header and resolve to configured principals.
func APIKeyAuth(cfg *config.AuthConfig) app.HandlerFunc {
	byKey := make(map[string]*Principal, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		byKey[k.Key] = &Principal{
			UserID: k.UserID,
			Name:   k.Name,
			Roles:  k.Roles,
		}
	}

	return keyauth.New(
		keyauth.WithKeyLookUp("header:X-API-Key", ""),
		keyauth.WithValidator(func(ctx context.Context, c *app.RequestContext, key string) (bool, error) {
			p, ok := byKey[key]
			if !ok {
				return false, nil
			}
			storePrincipal(c, p)
			return true, nil
		}),
		keyauth.WithErrorHandler(func(ctx context.Context, c *app.RequestContext, err error) {
			logger.Debug().Err(err).Str("path", string(c.Path())).Msg("request rejected by auth")
			c.JSON(consts.StatusUnauthorized, map[string]string{"error": "invalid or missing API key"})
			c.Abort()
		}),
	)
}

// RequireRoles gates a route on the principal holding at least one of the
// given roles.
func RequireRoles(roles ...string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		p := FromContext(c)
		if !p.HasAnyRole(roles...) {
			c.JSON(consts.StatusForbidden, map[string]string{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}
