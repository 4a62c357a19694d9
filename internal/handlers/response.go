package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/healthplus/identity/internal/apperrors"
)

// respondError writes the {status:false, message} failure shape.
// Unexpected errors are logged and surfaced as a generic 500.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}
	if appErr.Code == apperrors.CodeInternal {
		log.Printf("internal error: %v", appErr)
	}
	c.JSON(appErr.HTTPCode, gin.H{"status": false, "message": appErr.Message})
}
