// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tms-platform/accounts-api/internal/auth"
	"github.com/tms-platform/accounts-api/internal/core"
	"github.com/tms-platform/accounts-api/internal/middleware"
)

// maxRegisterFormSize caps the multipart registration form, profile
// image included.
const maxRegisterFormSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpg":  true,
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type Handler struct {
	service   *Service
	validator *validator.Validate
	cookieTTL time.Duration
}

func NewHandler(service *Service, cookieTTL time.Duration) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		cookieTTL: cookieTTL,
	}
}

// RegisterRoutes mounts the SuperAdmin-facing route set. Login is the
// only unauthenticated endpoint; everything else goes through the
// authenticator, with most operations additionally gated to SuperAdmin.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticate func(http.Handler) http.Handler,
) {
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(RoleSuperAdmin))

			r.Post("/register", h.Register)
			r.Get("/fetch/admins", h.FetchAdmins)
			r.Put("/admin-inactive-active", h.ToggleAdminStatus)
			r.Get("/admin-profile-page/{adminId}", h.GetAdminProfile)
			r.Put("/update-admin-profile/{adminId}", h.UpdateAdminProfile)
		})

		r.With(
			middleware.RequireRole(RoleSuperAdmin, RoleAdmin, RoleUser),
		).Get("/logout", h.Logout)

		r.Get("/profile", h.GetProfile)
	})
}

// RegisterAdminRoutes mounts the Admin-facing route set.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticate func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRole(RoleAdmin))

		r.Get("/admin/status/active-inactive", h.ToggleAdminStatus)
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRegisterFormSize); err != nil {
		core.BadRequest(w, "Profile Image is Required")
		return
	}

	file, header, err := r.FormFile("profileImage")
	if err != nil {
		core.BadRequest(w, "Profile Image is Required")
		return
	}
	defer file.Close()

	if !allowedImageTypes[header.Header.Get("Content-Type")] {
		core.BadRequest(w, "Invalid image format for profile image")
		return
	}

	in := RegisterInput{
		FirstName:  r.FormValue("firstName"),
		MiddleName: r.FormValue("middleName"),
		LastName:   r.FormValue("lastName"),
		Email:      r.FormValue("email"),
		Phone:      r.FormValue("phone"),
		Password:   r.FormValue("password"),
		Role:       r.FormValue("role"),
		PartyName:  r.FormValue("partyName"),
	}

	if in.FirstName == "" || in.LastName == "" || in.Email == "" ||
		in.Phone == "" || in.Password == "" {
		core.BadRequest(w, "Please fill all required fields")
		return
	}

	if !ValidRole(in.Role) {
		core.BadRequest(w, "Invalid role specified")
		return
	}

	if err := h.validator.Struct(in); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Register(r.Context(), in, ImageUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
		Size:        header.Size,
	})
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Success: true,
		Message: "Account Created Successfully",
		User:    ToUserResponse(u),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Please provide phone number and password")
		return
	}

	if req.Phone == "" || req.Password == "" {
		core.BadRequest(w, "Please provide phone number and password")
		return
	}

	u, token, err := h.service.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	auth.SetSessionCookie(w, u.Role, token, h.cookieTTL)

	core.WriteJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Message: "Logged in successfully",
		User:    ToUserResponse(u),
	})
}

// Logout clears every credential slot regardless of which one the
// caller presented.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookies(w)

	core.WriteJSON(w, http.StatusOK, LogoutResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

func (h *Handler) FetchAdmins(w http.ResponseWriter, r *http.Request) {
	superAdminID := middleware.GetUserID(r.Context())

	admins, err := h.service.FetchAdmins(r.Context(), superAdminID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.WriteJSON(w, http.StatusOK, AdminsResponse{
		Success:    true,
		Message:    "Admins fetched successfully",
		AdminCount: len(admins),
		Admins:     ToUserResponseList(admins),
	})
}

func (h *Handler) ToggleAdminStatus(w http.ResponseWriter, r *http.Request) {
	var req ToggleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Admin ID and status are required")
		return
	}

	if req.AdminID == "" || req.Status == "" {
		core.BadRequest(w, "Admin ID and status are required")
		return
	}

	if req.Status != "Yes" && req.Status != "No" {
		core.BadRequest(w, "Invalid status. Only 'Yes' or 'No' are allowed")
		return
	}

	callerID := middleware.GetUserID(r.Context())

	admin, err := h.service.SetAdminStatus(r.Context(), callerID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	statusLabel := "Inactive"
	if admin.IsActive {
		statusLabel = "Active"
	}

	core.WriteJSON(w, http.StatusOK, StatusToggleResponse{
		Success: true,
		Message: fmt.Sprintf(
			"Admin status updated successfully to %s", statusLabel,
		),
		Admin: ToUserResponse(admin),
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	authUser := middleware.GetAuthUser(r.Context())
	if authUser == nil {
		core.Unauthorized(w, "")
		return
	}

	u, err := h.service.GetProfile(r.Context(), authUser.ID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.WriteJSON(w, http.StatusOK, ProfileResponse{
		Success: true,
		Message: fmt.Sprintf("%s Welcome", authUser.FirstName),
		User:    ToUserResponse(u),
	})
}

func (h *Handler) GetAdminProfile(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "adminId")
	if adminID == "" {
		core.BadRequest(w, "Admin ID is required")
		return
	}

	admin, err := h.service.GetAdminProfile(r.Context(), adminID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.WriteJSON(w, http.StatusOK, AdminProfileResponse{
		Success: true,
		Message: "Admin profile fetched successfully",
		Admin:   ToUserResponse(admin),
	})
}

func (h *Handler) UpdateAdminProfile(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "adminId")
	if adminID == "" {
		core.BadRequest(w, "Admin ID is required and should be a valid ID")
		return
	}

	var req UpdateAdminProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	updated, err := h.service.UpdateAdminProfile(r.Context(), adminID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.WriteJSON(w, http.StatusOK, UpdateAdminResponse{
		Success:      true,
		Message:      "Admin profile updated successfully",
		UpdatedAdmin: ToUserResponse(updated),
	})
}
