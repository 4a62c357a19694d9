package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthplus/identity/internal/config"
	"github.com/healthplus/identity/internal/database"
	"github.com/healthplus/identity/internal/models"
	"github.com/healthplus/identity/internal/storage"
	"github.com/healthplus/identity/pkg/auth"
)

// StaffHandler implements the admin-driven staff onboarding workflow.
// The route is form-encoded and answers with redirects because it is
// submitted from the staff-registration page, not by API clients.
type StaffHandler struct {
	store  database.UserStore
	images storage.ObjectStorage
	cfg    *config.Config
}

func NewStaffHandler(store database.UserStore, images storage.ObjectStorage, cfg *config.Config) *StaffHandler {
	return &StaffHandler{store: store, images: images, cfg: cfg}
}

func (h *StaffHandler) redirectWith(c *gin.Context, param, message string) {
	c.Redirect(http.StatusFound, h.cfg.StaffRegisterRedirect+"?"+param+"="+url.QueryEscape(message))
}

// RegisterStaff handles POST /user/register/staff/. The caller must
// already hold superuser capability (enforced by middleware). The new
// account gets the configured default password; the staff member logs
// in with it afterwards, no tokens are issued here.
func (h *StaffHandler) RegisterStaff(c *gin.Context) {
	firstName := c.PostForm("first_name")
	lastName := c.PostForm("last_name")
	staffID := c.PostForm("staff_id")
	staffType := c.PostForm("staff_type")

	if firstName == "" || lastName == "" || staffID == "" || staffType == "" {
		h.redirectWith(c, "error", "All fields are required")
		return
	}

	userType := models.UserType(staffType)
	if !models.ValidUserType(userType) {
		h.redirectWith(c, "error", "staff_type is not a valid user type")
		return
	}

	if _, err := h.store.FindByStaffID(staffID); err == nil {
		h.redirectWith(c, "error", "A user with this staff id exists")
		return
	} else if !errors.Is(err, database.ErrUserNotFound) {
		log.Printf("staff id lookup failed: %v", err)
		h.redirectWith(c, "error", "Something went wrong, please try again")
		return
	}

	serialNumber, err := h.store.NextSerialNumber()
	if err != nil {
		log.Printf("serial number sequence: %v", err)
		h.redirectWith(c, "error", "Something went wrong, please try again")
		return
	}

	user := &models.User{
		StaffID:         &staffID,
		FirstName:       firstName,
		LastName:        lastName,
		UserType:        userType,
		SerialNumber:    serialNumber,
		YearOfAdmission: time.Now().Year(),
		IsStaff:         true,
		IsActive:        true,
	}
	if err := auth.SetPassword(user, &h.cfg.DefaultStaffPassword); err != nil {
		log.Printf("set default password: %v", err)
		h.redirectWith(c, "error", "Something went wrong, please try again")
		return
	}

	if err := h.store.CreateUser(user); err != nil {
		if errors.Is(err, database.ErrDuplicateIdentity) {
			h.redirectWith(c, "error", "A user with this staff id exists")
			return
		}
		log.Printf("create staff user: %v", err)
		h.redirectWith(c, "error", "Something went wrong, please try again")
		return
	}

	if file, err := c.FormFile("staff_id_img"); err == nil {
		if imageURL, err := h.uploadVerificationImage(c, file); err != nil {
			log.Printf("staff id image upload: %v", err)
		} else {
			user.StaffIDVerificationImage = imageURL
			if err := h.store.UpdateUser(user); err != nil {
				log.Printf("attach staff id image: %v", err)
			}
		}
	}

	h.redirectWith(c, "success", "Staff account created successfully")
}

func (h *StaffHandler) uploadVerificationImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	key := "staff-id/" + uuid.NewString() + filepath.Ext(file.Filename)
	contentType := file.Header.Get("Content-Type")
	if err := h.images.Put(c.Request.Context(), key, src, file.Size, contentType); err != nil {
		return "", err
	}
	return h.images.URL(key), nil
}
