package database

import (
	"errors"
	"time"

	"github.com/healthplus/identity/internal/models"
	"gorm.io/gorm"
)

func (d *Database) CreateUser(user *models.User) error {
	if err := d.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateIdentity
		}
		return err
	}
	return nil
}

func (d *Database) UpdateUser(user *models.User) error {
	return d.db.Save(user).Error
}

func (d *Database) GetUser(id string) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByMatricNumber matches the identifier exactly, case-sensitive.
func (d *Database) FindByMatricNumber(matricNumber string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("matric_number = ?", matricNumber).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindByStaffID(staffID string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("staff_id = ?", staffID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (d *Database) UpdateLastLogin(id string) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Update("last_login", time.Now()).Error
}

// NextSerialNumber returns the next value in the serial-number
// sequence for registrations that omit the field.
func (d *Database) NextSerialNumber() (int, error) {
	var next int
	err := d.db.Model(&models.User{}).
		Select("COALESCE(MAX(serial_number), 0) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}
