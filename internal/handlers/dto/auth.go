package dto

import (
	"time"

	"github.com/healthplus/identity/internal/models"
)

type RegisterStudentRequest struct {
	MatricNumber    string `json:"matric_number" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	MiddleName      string `json:"middle_name"`
	LastName        string `json:"last_name" binding:"required"`
	SerialNumber    *int   `json:"serial_number"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginRequest struct {
	MatricNumber string `json:"matric_number"`
	StaffID      string `json:"staff_id"`
	Password     string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// UserProjection is the account view both auth endpoints return. The
// field set and names follow the public API contract.
type UserProjection struct {
	MatricNumber    *string         `json:"matric_number"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	MiddleName      string          `json:"middle_name"`
	UserType        models.UserType `json:"user_type"`
	SerialNumber    int             `json:"serial_number"`
	YearOfAdmission int             `json:"year_of_admission"`
	ProfileImage    string          `json:"profile_image"`
	DateJoined      time.Time       `json:"date_joined"`
}

// NewUserProjection builds the projection, substituting the configured
// default image URL when the account has none.
func NewUserProjection(user *models.User, defaultProfileImage string) UserProjection {
	profileImage := user.ProfileImage
	if profileImage == "" {
		profileImage = defaultProfileImage
	}
	return UserProjection{
		MatricNumber:    user.MatricNumber,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		MiddleName:      user.MiddleName,
		UserType:        user.UserType,
		SerialNumber:    user.SerialNumber,
		YearOfAdmission: user.YearOfAdmission,
		ProfileImage:    profileImage,
		DateJoined:      user.DateJoined,
	}
}
