// AngelaMos | 2026
// memory_repository.go

package user

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tms-platform/accounts-api/internal/core"
)

// MemoryRepository is a map-backed Repository for tests and local
// development. It enforces the same unique constraints the Postgres
// schema does, returning the same sentinel errors.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*User)}
}

func (r *MemoryRepository) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if user.Role == RoleSuperAdmin && existing.Role == RoleSuperAdmin {
			return fmt.Errorf("create user: %w", core.ErrSoleSuper)
		}
		if existing.Email == user.Email || existing.Phone == user.Phone {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	// Accounts start inactive, same as the schema default; activation
	// only happens through SetActive.
	user.IsActive = false

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	clone := *u
	return &clone, nil
}

func (r *MemoryRepository) GetByPhone(
	_ context.Context,
	phone string,
) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Phone == phone {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get user by phone: %w", core.ErrNotFound)
}

func (r *MemoryRepository) FindSuperAdmin(_ context.Context) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Role == RoleSuperAdmin {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("find superadmin: %w", core.ErrNotFound)
}

func (r *MemoryRepository) ExistsByEmailOrPhone(
	_ context.Context,
	email, phone string,
) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email || u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) ListAdminsManagedBy(
	_ context.Context,
	superAdminID string,
) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admins := []User{}
	for _, u := range r.users {
		if u.Role == RoleAdmin && u.ManagedByID() == superAdminID {
			admins = append(admins, *u)
		}
	}
	return admins, nil
}

func (r *MemoryRepository) FindAdminManagedBy(
	_ context.Context,
	adminID, superAdminID string,
) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[adminID]
	if !ok || u.Role != RoleAdmin || u.ManagedByID() != superAdminID {
		return nil, fmt.Errorf("find managed admin: %w", core.ErrNotFound)
	}
	clone := *u
	return &clone, nil
}

func (r *MemoryRepository) SetActive(
	_ context.Context,
	id string,
	active bool,
) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("set active: %w", core.ErrNotFound)
	}

	u.IsActive = active
	u.UpdatedAt = time.Now()

	clone := *u
	return &clone, nil
}

func (r *MemoryRepository) UpdateProfile(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}

	for id, other := range r.users {
		if id == user.ID {
			continue
		}
		if other.Email == user.Email || other.Phone == user.Phone {
			return fmt.Errorf("update profile: %w", core.ErrDuplicateKey)
		}
	}

	stored.FirstName = user.FirstName
	stored.MiddleName = user.MiddleName
	stored.LastName = user.LastName
	stored.Email = user.Email
	stored.Phone = user.Phone
	stored.Address = user.Address
	stored.PartyName = user.PartyName
	stored.SubscriptionModel = user.SubscriptionModel
	stored.IsVerified = user.IsVerified
	stored.UpdatedAt = time.Now()

	user.UpdatedAt = stored.UpdatedAt
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
