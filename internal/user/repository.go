// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tms-platform/accounts-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	FindSuperAdmin(ctx context.Context) (*User, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	ListAdminsManagedBy(ctx context.Context, superAdminID string) ([]User, error)
	FindAdminManagedBy(ctx context.Context, adminID, superAdminID string) (*User, error)
	SetActive(ctx context.Context, id string, active bool) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `
	id, first_name, middle_name, last_name, email, phone, password_hash,
	address, party_name, role, subscription_model,
	profile_image_id, profile_image_url, managed_by,
	is_active, is_verified, created_at, updated_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (
			id, first_name, middle_name, last_name, email, phone,
			password_hash, address, party_name, role, subscription_model,
			profile_image_id, profile_image_url, managed_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING is_active, is_verified, created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.FirstName,
		user.MiddleName,
		user.LastName,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Address,
		user.PartyName,
		user.Role,
		user.SubscriptionModel,
		user.ProfileImageID,
		user.ProfileImageURL,
		user.ManagedBy,
	)
	if err != nil {
		if isSoleSuperAdminViolation(err) {
			return fmt.Errorf("create user: %w", core.ErrSoleSuper)
		}
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE id = $1`,
		userColumns,
	)

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByPhone(
	ctx context.Context,
	phone string,
) (*User, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE phone = $1`,
		userColumns,
	)

	var user User
	err := r.db.GetContext(ctx, &user, query, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by phone: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by phone: %w", err)
	}

	return &user, nil
}

func (r *repository) FindSuperAdmin(ctx context.Context) (*User, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE role = $1`,
		userColumns,
	)

	var user User
	err := r.db.GetContext(ctx, &user, query, RoleSuperAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find superadmin: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find superadmin: %w", err)
	}

	return &user, nil
}

func (r *repository) ExistsByEmailOrPhone(
	ctx context.Context,
	email, phone string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR phone = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email, phone); err != nil {
		return false, fmt.Errorf("check email/phone exists: %w", err)
	}

	return exists, nil
}

func (r *repository) ListAdminsManagedBy(
	ctx context.Context,
	superAdminID string,
) ([]User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE role = $1 AND managed_by = $2
		ORDER BY created_at DESC`,
		userColumns,
	)

	users := []User{}
	err := r.db.SelectContext(ctx, &users, query, RoleAdmin, superAdminID)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}

	return users, nil
}

// FindAdminManagedBy resolves the toggle target: the id must exist, hold
// role Admin, and be owned by the calling SuperAdmin, all in one lookup.
func (r *repository) FindAdminManagedBy(
	ctx context.Context,
	adminID, superAdminID string,
) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE id = $1 AND role = $2 AND managed_by = $3`,
		userColumns,
	)

	var user User
	err := r.db.GetContext(ctx, &user, query, adminID, RoleAdmin, superAdminID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find managed admin: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find managed admin: %w", err)
	}

	return &user, nil
}

func (r *repository) SetActive(
	ctx context.Context,
	id string,
	active bool,
) (*User, error) {
	query := fmt.Sprintf(`
		UPDATE users
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`,
		userColumns,
	)

	var user User
	err := r.db.GetContext(ctx, &user, query, id, active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("set active: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("set active: %w", err)
	}

	return &user, nil
}

func (r *repository) UpdateProfile(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET first_name = $2, middle_name = $3, last_name = $4, email = $5,
		    phone = $6, address = $7, party_name = $8,
		    subscription_model = $9, is_verified = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &user.UpdatedAt, query,
		user.ID,
		user.FirstName,
		user.MiddleName,
		user.LastName,
		user.Email,
		user.Phone,
		user.Address,
		user.PartyName,
		user.SubscriptionModel,
		user.IsVerified,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update profile: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update profile: %w", err)
	}

	return nil
}

// soleSuperAdminIndex backs the at-most-one-SuperAdmin invariant; the
// constraint violation, not the handler's pre-check, is the
// authoritative conflict signal.
const soleSuperAdminIndex = "users_sole_superadmin_idx"

func isSoleSuperAdminViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" &&
			pgErr.ConstraintName == soleSuperAdminIndex
	}
	return false
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
