package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/healthplus/identity/internal/models"
)

// HashPassword returns a salted bcrypt hash of the plaintext.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// SetPassword stores a salted hash on the account. A nil plaintext
// marks the password unusable: login by password stays rejected until
// a password is explicitly set.
func SetPassword(user *models.User, plaintext *string) error {
	if plaintext == nil {
		user.PasswordHash = ""
		return nil
	}
	hash, err := HashPassword(*plaintext)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return nil
}

// CheckPasswordHash verifies a plaintext against a stored hash. An
// empty hash is the unusable-password state and never verifies.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
