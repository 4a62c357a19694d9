package services

import (
	"errors"

	"github.com/healthplus/identity/internal/apperrors"
	"github.com/healthplus/identity/internal/config"
	"github.com/healthplus/identity/internal/database"
	"github.com/healthplus/identity/internal/models"
	"github.com/healthplus/identity/pkg/auth"
)

// Authenticator resolves a submitted identifier to an account and
// verifies the password. It accepts exactly one of the two identifier
// namespaces per attempt.
type Authenticator struct {
	store  database.UserStore
	policy config.DeactivatedLoginPolicy
}

func NewAuthenticator(store database.UserStore, policy config.DeactivatedLoginPolicy) *Authenticator {
	return &Authenticator{store: store, policy: policy}
}

// Authenticate returns the account matching the identifier when the
// password checks out. Unknown identifiers and wrong passwords produce
// the same error, so a caller cannot probe which identifiers exist.
func (a *Authenticator) Authenticate(matricNumber, staffID, password string) (*models.User, error) {
	if password == "" || (matricNumber == "" && staffID == "") {
		return nil, apperrors.ErrMissingCredentials
	}
	if matricNumber != "" && staffID != "" {
		return nil, apperrors.ErrAmbiguousIdentity
	}

	var (
		user *models.User
		err  error
	)
	if staffID != "" {
		user, err = a.store.FindByStaffID(staffID)
	} else {
		user, err = a.store.FindByMatricNumber(matricNumber)
	}
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Internal(err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		// Deactivation is only revealed after password knowledge is
		// proved, unless the uniform policy is configured.
		if a.policy == config.PolicyUniform {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.ErrAccountDeactivated
	}

	return user, nil
}
