// Package middleware resolves the request identity and gates routes on it.
//
// Handlers receive the identity as an explicit argument instead of looking
// it up from ambient state:
//
//	ids := middleware.NewIdentities(authService)
//	r.Post("/order", "order.store", ids.Handle(orders.Store, middleware.RequireAuthenticated("/login")))
package middleware

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/session"
)

// SessionUserKey is the session key holding the authenticated user's id.
const SessionUserKey = "user_id"

// Identity is who is making the request. The zero value is anonymous.
type Identity struct {
	User *models.User
}

// Authenticated reports whether the session resolved to a user.
func (i Identity) Authenticated() bool { return i.User != nil }

// IsAdmin reports whether the user holds the admin role.
func (i Identity) IsAdmin() bool { return i.User != nil && i.User.IsAdmin }

// UserID returns the user's id, or 0 when anonymous.
func (i Identity) UserID() uint {
	if i.User == nil {
		return 0
	}
	return i.User.ID
}

// HandlerFunc is an HTTP handler that is handed the resolved identity.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, id Identity)

// Guard wraps a HandlerFunc with an access check.
type Guard func(next HandlerFunc) HandlerFunc

// UserResolver looks up the user behind a session id. (nil, nil) means anonymous.
type UserResolver interface {
	CurrentUser(ctx context.Context, id uint) (*models.User, error)
}

// Identities turns identity-aware handlers into plain http.HandlerFuncs.
type Identities struct {
	users UserResolver
}

func NewIdentities(users UserResolver) *Identities {
	return &Identities{users: users}
}

// Resolve returns the identity bound to the request's session.
func (x *Identities) Resolve(r *http.Request) (Identity, error) {
	sess := session.FromCtx(r)
	if sess == nil {
		return Identity{}, nil
	}
	id, ok := sess.GetUint(SessionUserKey)
	if !ok {
		return Identity{}, nil
	}
	user, err := x.users.CurrentUser(r.Context(), id)
	if err != nil {
		return Identity{}, err
	}
	return Identity{User: user}, nil
}

// Handle resolves the identity once, then runs h behind guards.
// The first guard is checked first.
func (x *Identities) Handle(h HandlerFunc, guards ...Guard) http.HandlerFunc {
	for i := len(guards) - 1; i >= 0; i-- {
		h = guards[i](h)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := x.Resolve(r)
		if err != nil {
			logger.WithCtx(r.Context()).Error().Err(err).Msg("resolve identity")
			response.ServerError(w, "Internal Server Error")
			return
		}
		if id.Authenticated() {
			l := logger.WithCtx(r.Context()).With().Uint("user_id", id.UserID()).Logger()
			r = r.WithContext(logger.Inject(r.Context(), l))
		}
		h(w, r, id)
	}
}
