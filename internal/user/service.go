// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tms-platform/accounts-api/internal/core"
	"github.com/tms-platform/accounts-api/internal/middleware"
)

// ImageRef identifies an uploaded profile image in external storage.
type ImageRef struct {
	PublicID string
	URL      string
}

type ImageStore interface {
	Upload(
		ctx context.Context,
		name, contentType string,
		r io.Reader,
		size int64,
	) (*ImageRef, error)
	Remove(ctx context.Context, publicID string) error
}

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type Service struct {
	repo   Repository
	images ImageStore
	tokens TokenIssuer
}

func NewService(repo Repository, images ImageStore, tokens TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		images: images,
		tokens: tokens,
	}
}

// ImageUpload is a pending profile image from the multipart form.
type ImageUpload struct {
	Name        string
	ContentType string
	Reader      io.Reader
	Size        int64
}

// Register creates an account. The role/ownership invariants are checked
// up front for their specific error messages, but the datastore's unique
// indexes remain the authoritative backstop: a conflicting concurrent
// write surfaces as the same conflict error.
func (s *Service) Register(
	ctx context.Context,
	in RegisterInput,
	image ImageUpload,
) (*User, error) {
	if len(in.Password) < core.MinPasswordLength {
		return nil, core.ValidationError(fmt.Sprintf(
			"Password must be at least %d characters", core.MinPasswordLength,
		))
	}

	var managedBy *string

	if in.Role == RoleAdmin {
		superAdmin, err := s.repo.FindSuperAdmin(ctx)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, core.ValidationError("No SuperAdmin present")
			}
			return nil, fmt.Errorf("find superadmin: %w", err)
		}
		managedBy = &superAdmin.ID

		if in.PartyName == "" {
			return nil, core.ValidationError("Party Name is required for Admin")
		}
	}

	if in.Role == RoleSuperAdmin {
		if _, err := s.repo.FindSuperAdmin(ctx); err == nil {
			return nil, core.ConflictError("Only one SuperAdmin is allowed")
		} else if !errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("find superadmin: %w", err)
		}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	exists, err := s.repo.ExistsByEmailOrPhone(ctx, email, in.Phone)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, core.ConflictError(
			"Email or phone number is already registered. Please login.",
		)
	}

	// Upload before any database write so a storage failure leaves no
	// partial record behind.
	ref, err := s.images.Upload(
		ctx,
		image.Name,
		image.ContentType,
		image.Reader,
		image.Size,
	)
	if err != nil {
		slog.Error("profile image upload failed", "error", err)
		return nil, core.UpstreamError("Failed to upload profile image")
	}

	passwordHash, err := core.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:              uuid.New().String(),
		FirstName:       strings.TrimSpace(in.FirstName),
		MiddleName:      strings.TrimSpace(in.MiddleName),
		LastName:        strings.TrimSpace(in.LastName),
		Email:           email,
		Phone:           in.Phone,
		PasswordHash:    passwordHash,
		PartyName:       strings.TrimSpace(in.PartyName),
		Role:            in.Role,
		ProfileImageID:  ref.PublicID,
		ProfileImageURL: ref.URL,
		ManagedBy:       managedBy,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// The image is already in the bucket at this point; don't let a
		// failed insert strand it there.
		if rmErr := s.images.Remove(ctx, ref.PublicID); rmErr != nil {
			slog.Warn("orphaned profile image cleanup failed",
				"public_id", ref.PublicID,
				"error", rmErr,
			)
		}

		if errors.Is(err, core.ErrSoleSuper) {
			return nil, core.ConflictError("Only one SuperAdmin is allowed")
		}
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ConflictError(
				"Email or phone number is already registered. Please login.",
			)
		}
		return nil, err
	}

	// A token is issued here but never attached to the response; newly
	// registered accounts must log in on their own.
	if _, err := s.tokens.Issue(u.ID); err != nil {
		slog.Warn("post-registration token issue failed", "error", err)
	}

	return u, nil
}

// Login authenticates by phone and password. Unknown phone and wrong
// password take the same amount of time and return the same error, so
// the response does not reveal which credential was wrong.
func (s *Service) Login(
	ctx context.Context,
	phone, password string,
) (*User, string, error) {
	u, err := s.repo.GetByPhone(ctx, phone)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, "", err
	}

	var hash *string
	if u != nil {
		hash = &u.PasswordHash
	}

	valid, err := core.VerifyPasswordTimingSafe(password, hash)
	if err != nil {
		return nil, "", fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, "", core.UnauthorizedError("Invalid phone number or password")
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return u, token, nil
}

// LoadAuthUser resolves a verified token subject to the request identity
// carried through the middleware chain.
func (s *Service) LoadAuthUser(
	ctx context.Context,
	userID string,
) (*middleware.AuthUser, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &middleware.AuthUser{
		ID:        u.ID,
		Role:      u.Role,
		FirstName: u.FirstName,
	}, nil
}

func (s *Service) FetchAdmins(
	ctx context.Context,
	superAdminID string,
) ([]User, error) {
	admins, err := s.repo.ListAdminsManagedBy(ctx, superAdminID)
	if err != nil {
		return nil, err
	}
	return admins, nil
}

// SetAdminStatus flips an Admin's active flag. The target must resolve
// by id, role Admin, and managed-by equal to the caller in one lookup;
// a miss on any of the three yields the same 401, leaking nothing about
// which condition failed.
func (s *Service) SetAdminStatus(
	ctx context.Context,
	callerID string,
	req ToggleStatusRequest,
) (*User, error) {
	active := req.Status == "Yes"

	admin, err := s.repo.FindAdminManagedBy(ctx, req.AdminID, callerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NewAppError(
				core.ErrNotFound,
				"Admin not found or not authorized to update status",
				http.StatusUnauthorized,
				"ADMIN_NOT_FOUND",
			)
		}
		return nil, err
	}

	updated, err := s.repo.SetActive(ctx, admin.ID, active)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("User not found")
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) GetAdminProfile(
	ctx context.Context,
	adminID string,
) (*User, error) {
	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("Admin not found")
		}
		return nil, err
	}
	return admin, nil
}

// UpdateAdminProfile overwrites the whitelist unconditionally. Email and
// phone are intentionally not re-checked for uniqueness here; the unique
// indexes reject a collision and it surfaces as a conflict.
func (s *Service) UpdateAdminProfile(
	ctx context.Context,
	adminID string,
	req UpdateAdminProfileRequest,
) (*User, error) {
	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil || admin.Role != RoleAdmin {
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		return nil, core.NewAppError(
			core.ErrNotFound,
			"Admin not found or unauthorized!",
			http.StatusUnauthorized,
			"ADMIN_NOT_FOUND",
		)
	}

	if req.SubscriptionModel != nil && !ValidSubscription(*req.SubscriptionModel) {
		return nil, core.ValidationError("Invalid subscription model")
	}

	admin.FirstName = req.FirstName
	admin.MiddleName = req.MiddleName
	admin.LastName = req.LastName
	admin.Email = strings.ToLower(strings.TrimSpace(req.Email))
	admin.Phone = req.Phone
	admin.Address = req.Address
	admin.PartyName = req.PartyName
	admin.SubscriptionModel = req.SubscriptionModel
	admin.IsVerified = req.IsVerified

	if err := s.repo.UpdateProfile(ctx, admin); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ConflictError(
				"email or phone number is already in use",
			)
		}
		return nil, err
	}

	return admin, nil
}
