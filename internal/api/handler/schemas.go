package handler

import (
	"time"

	"github.com/univadmin/records-system/internal/core/domain"
)

// --- Academic faculty ---

type createAcademicFacultyRequest struct {
	Title string `json:"title" validate:"required,max=120"`
}

type updateAcademicFacultyRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=120"`
}

type academicFacultyResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// --- User ---

type profileRequest struct {
	Student string `json:"student" validate:"omitempty,mongodb"`
	Faculty string `json:"faculty" validate:"omitempty,mongodb"`
	Admin   string `json:"admin"   validate:"omitempty,mongodb"`
}

type createUserRequest struct {
	Role     string         `json:"role"     validate:"required,oneof=student faculty admin"`
	Password string         `json:"password" validate:"omitempty,min=6,max=72"`
	Profile  profileRequest `json:"profile"`
}

// updateUserRequest has no password, id or role: those change only through
// their own flows, and unknown JSON keys are dropped by the binder.
type updateUserRequest struct {
	NeedsPasswordChange *bool           `json:"needsPasswordChange"`
	Profile             *profileRequest `json:"profile"`
}

type userResponse struct {
	ID                  string              `json:"id"`
	Role                string              `json:"role"`
	NeedsPasswordChange bool                `json:"needsPasswordChange"`
	PasswordChangedAt   *time.Time          `json:"passwordChangedAt,omitempty"`
	Profile             domain.ProfileLinks `json:"profile"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// --- Auth ---

type loginRequest struct {
	ID       string `json:"id"       validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken         string `json:"accessToken"`
	NeedsPasswordChange bool   `json:"needsPasswordChange"`
	ID                  string `json:"id"`
	Role                string `json:"role"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}
