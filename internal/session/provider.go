package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"ngoconnect/internal/domain"
	"ngoconnect/internal/store"
)

const currentEmailKey = "ngo_current_email"

// Provider maintains the single active session by remembering an email in the
// persistent store and resolving it to a user record. There is no expiry and
// no multi-session tracking.
type Provider struct {
	kv    *store.KV
	users domain.UserRepository

	mu      sync.RWMutex
	current *domain.User
}

// NewProvider wires a session provider over the KV store and user repository.
func NewProvider(kv *store.KV, users domain.UserRepository) *Provider {
	return &Provider{kv: kv, users: users}
}

// Resume restores the session remembered in the store, if any. An absent or
// unresolvable marker yields an anonymous session, never an error the caller
// must handle beyond store failures.
func (p *Provider) Resume(ctx context.Context) error {
	email, ok, err := p.kv.Get(currentEmailKey)
	if err != nil {
		return err
	}
	if !ok || strings.TrimSpace(email) == "" {
		return nil
	}
	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	p.mu.Lock()
	p.current = user
	p.mu.Unlock()
	return nil
}

// Login resolves the account by email and activates it. The password is
// accepted but not verified against the stored credential; the portal keeps
// the permissive demo behavior and the store holds plaintext credentials
// anyway.
func (p *Provider) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := p.kv.Set(currentEmailKey, email); err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.current = user
	p.mu.Unlock()
	return user, nil
}

// Register creates a new account and immediately establishes it as the active
// session.
func (p *Provider) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := p.users.Create(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	if err := p.kv.Set(currentEmailKey, email); err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.current = user
	p.mu.Unlock()
	return user, nil
}

// Logout clears both the in-memory session and the remembered email.
func (p *Provider) Logout() error {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
	return p.kv.Delete(currentEmailKey)
}

// Current returns the active user, or nil when the session is anonymous.
func (p *Provider) Current() *domain.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return nil
	}
	u := *p.current
	return &u
}
