package database

import (
	"errors"

	"github.com/healthplus/identity/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateIdentity = errors.New("identity already registered")
)

// UserStore is the identity-store contract the handlers depend on.
// *Database is the Postgres implementation.
type UserStore interface {
	CreateUser(user *models.User) error
	UpdateUser(user *models.User) error
	GetUser(id string) (*models.User, error)
	FindByMatricNumber(matricNumber string) (*models.User, error)
	FindByStaffID(staffID string) (*models.User, error)
	UpdateLastLogin(id string) error
	NextSerialNumber() (int, error)
}

type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}
