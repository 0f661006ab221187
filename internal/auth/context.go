package auth

import (
	"context"

	"github.com/GoArmGo/CareerCraft/internal/domain"
)

type principalKey struct{}

// WithPrincipal кладет аутентифицированного пользователя в контекст запроса.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom достает пользователя из контекста.
func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}
