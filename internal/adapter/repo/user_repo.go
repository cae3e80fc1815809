package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ngoconnect/internal/domain"
	"ngoconnect/internal/store"
)

const usersKey = "ngo_users"

// Identity of the auto-provisioned admin account. Exactly one admin is
// guaranteed to exist before any other operation runs.
const (
	AdminID       = "admin-1"
	AdminName     = "System Admin"
	AdminEmail    = "admin@ngo.org"
	AdminPassword = "admin123"
)

// UserRepositoryKV implements domain.UserRepository on top of the KV store.
// Every mutation rewrites the entire users collection under a single lock, so
// operations appear atomic to in-process callers.
type UserRepositoryKV struct {
	kv *store.KV
	mu sync.Mutex
}

// NewUserRepository creates a new UserRepositoryKV.
func NewUserRepository(kv *store.KV) *UserRepositoryKV {
	return &UserRepositoryKV{kv: kv}
}

// List returns all users in insertion order.
func (r *UserRepositoryKV) List(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// FindByEmail returns the user whose email matches case-insensitively, or
// domain.ErrNotFound. Uniqueness guarantees at most one match.
func (r *UserRepositoryKV) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create registers a new USER-role account. The duplicate check is an exact,
// case-sensitive email comparison even though lookup is case-insensitive;
// that asymmetry is long-standing observed behavior and is kept as-is.
func (r *UserRepositoryKV) Create(ctx context.Context, name, email, password string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return nil, domain.ErrDuplicateUser
		}
	}
	user := domain.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: password,
		Role:     domain.UserRoleUser,
		JoinedAt: time.Now().UTC(),
	}
	users = append(users, user)
	if err := r.save(users); err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureAdmin provisions the distinguished admin account if it is missing and
// backfills the known default password onto a legacy admin record that lacks
// one. Idempotent; invoked once at startup.
func (r *UserRepositoryKV) EnsureAdmin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.load()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Email == AdminEmail {
			if users[i].Password != "" {
				return nil
			}
			users[i].Password = AdminPassword
			return r.save(users)
		}
	}
	users = append(users, domain.User{
		ID:       AdminID,
		Name:     AdminName,
		Email:    AdminEmail,
		Password: AdminPassword,
		Role:     domain.UserRoleAdmin,
		JoinedAt: time.Now().UTC(),
	})
	return r.save(users)
}

func (r *UserRepositoryKV) load() ([]domain.User, error) {
	raw, ok, err := r.kv.Get(usersKey)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []domain.User{}, nil
	}
	var users []domain.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("repo: decode users: %w", err)
	}
	return users, nil
}

func (r *UserRepositoryKV) save(users []domain.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("repo: encode users: %w", err)
	}
	return r.kv.Set(usersKey, string(raw))
}

var _ domain.UserRepository = (*UserRepositoryKV)(nil)
