package database

import (
	"errors"

	"github.com/healthplus/identity/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func (d *Database) Connect(dsn string) error {
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	// TranslateError turns unique-constraint violations into
	// gorm.ErrDuplicatedKey, which is what serializes concurrent
	// registrations for the same identifier.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return err
	}

	d.db = db

	return nil
}
