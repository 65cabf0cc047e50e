// Package session provides HTTP session management backed by Redis (or memory).
//
// The cookie carries a signed token wrapping a random session id; the
// payload itself lives server-side in a Store.
//
// Usage (middleware):
//
//	mgr := session.NewManager(store, signer, opts)
//	r.Use(mgr.Middleware())
//
// Usage (handler):
//
//	sess := session.FromCtx(r)
//	sess.Set("user_id", user.ID)
//	sess.Save(r.Context(), w)
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// ------------------- Options -------------------

// Options configures session behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		CookieName: "storefront_session",
		TTL:        2 * time.Hour,
		HTTPOnly:   true,
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// ------------------- Session -------------------

type ctxKey struct{}

// Session is an in-request session handle.
type Session struct {
	id        string
	staleID   string
	data      map[string]interface{}
	changed   bool
	destroyed bool
	mgr       *Manager
}

// newID generates a cryptographically random 32-byte hex session ID.
func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Set stores a value under key in the session.
func (s *Session) Set(key string, value interface{}) {
	s.data[key] = value
	s.changed = true
}

// Get retrieves a value from the session.
func (s *Session) Get(key string) (interface{}, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetUint is a typed convenience getter.
func (s *Session) GetUint(key string) (uint, bool) {
	v, ok := s.data[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64: // JSON numbers unmarshal as float64
		if n <= 0 || n != float64(uint(n)) {
			return 0, false
		}
		return uint(n), true
	case uint:
		return n, true
	case int:
		if n <= 0 {
			return 0, false
		}
		return uint(n), true
	}
	return 0, false
}

// Delete removes a key from the session.
func (s *Session) Delete(key string) {
	delete(s.data, key)
	s.changed = true
}

// Flash stores a message that is removed by the next PopFlash.
func (s *Session) Flash(key, msg string) {
	s.Set("_flash_"+key, msg)
}

// PopFlash retrieves and removes a flash message.
func (s *Session) PopFlash(key string) string {
	v, ok := s.data["_flash_"+key]
	if !ok {
		return ""
	}
	s.Delete("_flash_" + key)
	msg, _ := v.(string)
	return msg
}

// Regenerate moves the session to a fresh id, keeping its data.
// Call it whenever the privilege level changes (login).
func (s *Session) Regenerate() error {
	id, err := newID()
	if err != nil {
		return fmt.Errorf("session: new id: %w", err)
	}
	if s.staleID == "" {
		s.staleID = s.id
	}
	s.id = id
	s.changed = true
	return nil
}

// Invalidate destroys the session (logout).
func (s *Session) Invalidate() {
	s.data = map[string]interface{}{}
	s.destroyed = true
	s.changed = true
}

// Save persists the session and writes the cookie to the response.
// An invalidated session is removed from the store and its cookie expired.
func (s *Session) Save(ctx context.Context, w http.ResponseWriter) error {
	if !s.changed {
		return nil
	}
	m := s.mgr

	if s.staleID != "" {
		if err := m.store.Delete(ctx, s.staleID); err != nil {
			return fmt.Errorf("session: drop stale: %w", err)
		}
		s.staleID = ""
	}

	if s.destroyed {
		if err := m.store.Delete(ctx, s.id); err != nil {
			return fmt.Errorf("session: delete: %w", err)
		}
		http.SetCookie(w, m.cookie("", -1))
		s.changed = false
		return nil
	}

	if err := m.store.Save(ctx, s.id, s.data, m.opts.TTL); err != nil {
		return err
	}

	token, err := m.signer.Sign(s.id)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(token, int(m.opts.TTL.Seconds())))

	s.changed = false
	return nil
}

// ------------------- Manager -------------------

// Manager binds a Store, a cookie signer and cookie options.
type Manager struct {
	store  Store
	signer *auth.TokenSigner
	opts   Options
}

func NewManager(store Store, signer *auth.TokenSigner, opts Options) *Manager {
	return &Manager{store: store, signer: signer, opts: opts}
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     m.opts.Path,
		MaxAge:   maxAge,
		HttpOnly: m.opts.HTTPOnly,
		Secure:   m.opts.Secure,
		SameSite: m.opts.SameSite,
	}
}

// load resolves the request cookie to a stored session, or starts a new one.
func (m *Manager) load(r *http.Request) (*Session, error) {
	if c, err := r.Cookie(m.opts.CookieName); err == nil && c.Value != "" {
		if sid, err := m.signer.Verify(c.Value); err == nil {
			data, found, err := m.store.Load(r.Context(), sid)
			if err != nil {
				return nil, err
			}
			if found {
				return &Session{id: sid, data: data, mgr: m}, nil
			}
		}
	}

	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("session: new id: %w", err)
	}
	return &Session{id: id, data: map[string]interface{}{}, mgr: m}, nil
}

// Middleware loads (or creates) the session for every request and injects it
// into the request context. Handlers call session.FromCtx(r) to access it.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := m.load(r)
			if err != nil {
				logger.WithCtx(r.Context()).Error().Err(err).Msg("session: load failed")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx retrieves the session from the request context.
// It returns nil if the session middleware did not run.
func FromCtx(r *http.Request) *Session {
	s, _ := r.Context().Value(ctxKey{}).(*Session)
	return s
}
