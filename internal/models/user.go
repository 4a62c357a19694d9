package models

import (
	"time"

	"github.com/google/uuid"
)

// UserType is the role a user holds on the platform.
type UserType string

const (
	UserTypeStudent    UserType = "student"
	UserTypeDoctor     UserType = "doctor"
	UserTypeNurse      UserType = "nurse"
	UserTypePharmacist UserType = "pharmacist"
	UserTypeAdmin      UserType = "admin"
)

// ValidUserType reports whether t is one of the enumerated roles.
func ValidUserType(t UserType) bool {
	switch t {
	case UserTypeStudent, UserTypeDoctor, UserTypeNurse, UserTypePharmacist, UserTypeAdmin:
		return true
	}
	return false
}

// User is an identity record. Students carry MatricNumber, staff carry
// StaffID; both columns are unique, but NULL never collides, so each
// account is identified by exactly one of the two namespaces.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MatricNumber *string   `gorm:"uniqueIndex;size:25"`
	StaffID      *string   `gorm:"uniqueIndex;size:20"`

	FirstName  string   `gorm:"size:30;not null"`
	MiddleName string   `gorm:"size:30"`
	LastName   string   `gorm:"size:30;not null"`
	UserType   UserType `gorm:"type:varchar(10);default:'student'"`

	SerialNumber    int
	YearOfAdmission int

	// Empty hash means the password is unusable: login by password is
	// always rejected until a password is explicitly set.
	PasswordHash string

	ProfileImage             string
	StaffIDVerificationImage string
	VerifiedStaff            bool `gorm:"default:false"`

	IsStaff     bool `gorm:"default:false"`
	IsSuperuser bool `gorm:"default:false"`
	IsActive    bool `gorm:"default:true"`

	DateJoined time.Time `gorm:"autoCreateTime"`
	LastLogin  *time.Time
}

func (u *User) GetFullName() string {
	if u.MiddleName == "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName + " " + u.MiddleName + " " + u.LastName
}
