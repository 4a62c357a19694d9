package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthplus/identity/internal/apperrors"
	"github.com/healthplus/identity/internal/config"
	"github.com/healthplus/identity/internal/database"
	"github.com/healthplus/identity/internal/handlers/dto"
	"github.com/healthplus/identity/internal/models"
	"github.com/healthplus/identity/internal/services"
	"github.com/healthplus/identity/internal/tokenstore"
	"github.com/healthplus/identity/pkg/auth"
)

type AuthHandler struct {
	store      database.UserStore
	jwtManager *auth.JWTManager
	tokens     tokenstore.TokenStore
	authn      *services.Authenticator
	cfg        *config.Config
}

func NewAuthHandler(store database.UserStore, jwtMgr *auth.JWTManager, tokens tokenstore.TokenStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		store:      store,
		jwtManager: jwtMgr,
		tokens:     tokens,
		authn:      services.NewAuthenticator(store, cfg.DeactivatedPolicy),
		cfg:        cfg,
	}
}

// issueTokens generates a token pair, records the refresh token, and
// stamps last_login.
func (h *AuthHandler) issueTokens(c *gin.Context, user *models.User) (*auth.TokenPair, error) {
	pair, err := h.jwtManager.GeneratePair(user.ID.String())
	if err != nil {
		return nil, err
	}
	if err := h.tokens.SaveRefresh(c.Request.Context(), pair.Refresh, user.ID.String(), h.jwtManager.RefreshTTL()); err != nil {
		return nil, err
	}
	if err := h.store.UpdateLastLogin(user.ID.String()); err != nil {
		return nil, err
	}
	return pair, nil
}

// RegisterStudent handles POST /user/register/student/.
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.ErrMissingFields)
		return
	}

	// Friendly pre-check; the unique index still decides a race.
	if _, err := h.store.FindByMatricNumber(req.MatricNumber); err == nil {
		respondError(c, apperrors.ErrDuplicateIdentity)
		return
	} else if !errors.Is(err, database.ErrUserNotFound) {
		respondError(c, err)
		return
	}

	if req.Password != req.ConfirmPassword {
		respondError(c, apperrors.ErrPasswordMismatch)
		return
	}

	serialNumber := 0
	if req.SerialNumber != nil {
		serialNumber = *req.SerialNumber
	} else {
		next, err := h.store.NextSerialNumber()
		if err != nil {
			respondError(c, err)
			return
		}
		serialNumber = next
	}

	user := &models.User{
		MatricNumber:    &req.MatricNumber,
		FirstName:       req.FirstName,
		MiddleName:      req.MiddleName,
		LastName:        req.LastName,
		UserType:        models.UserTypeStudent,
		SerialNumber:    serialNumber,
		YearOfAdmission: time.Now().Year(),
		IsActive:        true,
	}
	if err := auth.SetPassword(user, &req.Password); err != nil {
		respondError(c, err)
		return
	}

	if err := h.store.CreateUser(user); err != nil {
		if errors.Is(err, database.ErrDuplicateIdentity) {
			respondError(c, apperrors.ErrDuplicateIdentity)
			return
		}
		respondError(c, err)
		return
	}

	pair, err := h.issueTokens(c, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  true,
		"message": "Account created successfully",
		"user":    dto.NewUserProjection(user, h.cfg.DefaultProfileImageURL),
		"tokens":  pair,
	})
}

// Login handles POST /user/login/.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.ErrMissingCredentials)
		return
	}

	user, err := h.authn.Authenticate(req.MatricNumber, req.StaffID, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	pair, err := h.issueTokens(c, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Login successful",
		"data": gin.H{
			"user":   dto.NewUserProjection(user, h.cfg.DefaultProfileImageURL),
			"tokens": pair,
		},
	})
}

// Refresh handles POST /user/token/refresh/. The presented refresh
// token is consumed and a fresh pair issued in its place.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.ErrInvalidToken)
		return
	}

	claims, err := h.jwtManager.Verify(req.Refresh, auth.TokenTypeRefresh)
	if err != nil {
		respondError(c, apperrors.ErrInvalidToken)
		return
	}

	userID, err := h.tokens.ConsumeRefresh(c.Request.Context(), req.Refresh)
	if err != nil || userID != claims.Subject {
		respondError(c, apperrors.ErrInvalidToken)
		return
	}

	user, err := h.store.GetUser(userID)
	if err != nil {
		respondError(c, apperrors.ErrInvalidToken)
		return
	}
	if !user.IsActive {
		respondError(c, apperrors.ErrAccountDeactivated)
		return
	}

	pair, err := h.issueTokens(c, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Token refreshed",
		"data": gin.H{
			"user":   dto.NewUserProjection(user, h.cfg.DefaultProfileImageURL),
			"tokens": pair,
		},
	})
}

// Logout blacklists the presented access token until it expires and
// revokes the refresh token when one is supplied.
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		respondError(c, apperrors.ErrInvalidToken)
		return
	}

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		respondError(c, apperrors.ErrInvalidToken)
		return
	}

	if err := h.tokens.BlacklistAccess(c.Request.Context(), rawToken, time.Until(exp)); err != nil {
		respondError(c, err)
		return
	}

	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Refresh != "" {
		if _, err := h.tokens.ConsumeRefresh(c.Request.Context(), req.Refresh); err != nil && !errors.Is(err, tokenstore.ErrRefreshNotFound) {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Logged out"})
}
