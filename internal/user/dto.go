// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

// RegisterInput carries the multipart form fields of a registration.
// The profile image part is handled separately by the handler.
type RegisterInput struct {
	FirstName  string `validate:"required,max=100"`
	MiddleName string `validate:"omitempty,max=100"`
	LastName   string `validate:"required,max=100"`
	Email      string `validate:"required,email,max=255"`
	Phone      string `validate:"required,number,min=10,max=15"`
	Password   string `validate:"required,min=6,max=128"`
	Role       string `validate:"required,oneof=User Admin SuperAdmin"`
	PartyName  string `validate:"omitempty,max=200"`
}

type LoginRequest struct {
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ToggleStatusRequest struct {
	AdminID string `json:"adminId" validate:"required"`
	Status  string `json:"status"  validate:"required,oneof=Yes No"`
}

// UpdateAdminProfileRequest is the fixed whitelist of fields a
// SuperAdmin may overwrite on an Admin record. All of them are written
// unconditionally; role and password are deliberately absent.
type UpdateAdminProfileRequest struct {
	FirstName         string  `json:"firstName"         validate:"omitempty,max=100"`
	MiddleName        string  `json:"middleName"        validate:"omitempty,max=100"`
	LastName          string  `json:"lastName"          validate:"omitempty,max=100"`
	Email             string  `json:"email"             validate:"omitempty,email,max=255"`
	Phone             string  `json:"phone"             validate:"omitempty,number,min=10,max=15"`
	Address           string  `json:"address"           validate:"omitempty,max=500"`
	PartyName         string  `json:"partyName"         validate:"omitempty,max=200"`
	SubscriptionModel *string `json:"subscriptionModel" validate:"omitempty,oneof=Monthly Yearly Quarterly"`
	IsVerified        bool    `json:"isVerified"`
}

type ProfileImage struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

type UserResponse struct {
	ID                string       `json:"id"`
	FirstName         string       `json:"firstName"`
	MiddleName        string       `json:"middleName,omitempty"`
	LastName          string       `json:"lastName"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone"`
	Address           string       `json:"address,omitempty"`
	PartyName         string       `json:"partyName,omitempty"`
	Role              string       `json:"role"`
	SubscriptionModel *string      `json:"subscriptionModel,omitempty"`
	ProfileImage      ProfileImage `json:"profileImage"`
	ManagedAccounts   *string      `json:"managedAccounts,omitempty"`
	IsActive          bool         `json:"isActive"`
	IsVerified        bool         `json:"isVerified"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

type RegisterResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AdminsResponse struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	AdminCount int            `json:"adminCount"`
	Admins     []UserResponse `json:"admins"`
}

type StatusToggleResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Admin   UserResponse `json:"admin"`
}

type ProfileResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type AdminProfileResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Admin   UserResponse `json:"admin"`
}

type UpdateAdminResponse struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	UpdatedAdmin UserResponse `json:"updatedAdmin"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		FirstName:         u.FirstName,
		MiddleName:        u.MiddleName,
		LastName:          u.LastName,
		Email:             u.Email,
		Phone:             u.Phone,
		Address:           u.Address,
		PartyName:         u.PartyName,
		Role:              u.Role,
		SubscriptionModel: u.SubscriptionModel,
		ProfileImage: ProfileImage{
			PublicID: u.ProfileImageID,
			URL:      u.ProfileImageURL,
		},
		ManagedAccounts: u.ManagedBy,
		IsActive:        u.IsActive,
		IsVerified:      u.IsVerified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
