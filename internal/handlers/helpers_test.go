package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/healthplus/identity/internal/config"
	"github.com/healthplus/identity/internal/database"
	"github.com/healthplus/identity/internal/handlers"
	"github.com/healthplus/identity/internal/middleware"
	"github.com/healthplus/identity/internal/models"
	"github.com/healthplus/identity/internal/tokenstore"
	"github.com/healthplus/identity/pkg/auth"
)

const defaultProfileImage = "https://cdn.healthplus.test/default.png"

type testEnv struct {
	router *gin.Engine
	store  *database.MemoryStore
	tokens *tokenstore.MemoryStore
	jwtMgr *auth.JWTManager
	images *memObjectStorage
	cfg    *config.Config
}

// memObjectStorage records uploads instead of talking to MinIO.
type memObjectStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemObjectStorage() *memObjectStorage {
	return &memObjectStorage{objects: make(map[string][]byte)}
}

func (m *memObjectStorage) EnsureBucket(context.Context) error { return nil }

func (m *memObjectStorage) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memObjectStorage) URL(key string) string {
	return "https://cdn.healthplus.test/staff-id-images/" + key
}

func newTestEnv(t *testing.T, policy config.DeactivatedLoginPolicy) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AccessTokenTTL:         30 * time.Minute,
		RefreshTokenTTL:        168 * time.Hour,
		DefaultStaffPassword:   "healthplus",
		DefaultProfileImageURL: defaultProfileImage,
		StaffRegisterRedirect:  "/user/register/staff/",
		DeactivatedPolicy:      policy,
	}

	store := database.NewMemoryStore()
	tokens := tokenstore.NewMemoryStore()
	jwtMgr := auth.NewJWTManager("test-secret", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	images := newMemObjectStorage()

	authH := handlers.NewAuthHandler(store, jwtMgr, tokens, cfg)
	staffH := handlers.NewStaffHandler(store, images, cfg)
	userH := handlers.NewUserHandler(cfg)

	authRequired := middleware.AuthMiddleware(jwtMgr, tokens, store)

	router := gin.New()
	user := router.Group("/user")
	{
		user.POST("/register/student/", authH.RegisterStudent)
		user.POST("/login/", authH.Login)
		user.POST("/token/refresh/", authH.Refresh)
		user.POST("/logout/", authH.Logout)
		user.GET("/me/", authRequired, userH.GetMe)
		user.POST("/register/staff/", authRequired, middleware.RequireSuperuser(), staffH.RegisterStaff)
	}

	return &testEnv{
		router: router,
		store:  store,
		tokens: tokens,
		jwtMgr: jwtMgr,
		images: images,
		cfg:    cfg,
	}
}

func (e *testEnv) postJSON(t *testing.T, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) request(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func studentPayload() map[string]interface{} {
	return map[string]interface{}{
		"matric_number":    "CSC/20/1234",
		"first_name":       "John",
		"last_name":        "Doe",
		"password":         "secret123",
		"confirm_password": "secret123",
	}
}

// registerStudent registers the default student and returns the
// issued token pair.
func (e *testEnv) registerStudent(t *testing.T) *auth.TokenPair {
	t.Helper()
	w := e.postJSON(t, "/user/register/student/", studentPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	tokens := body["tokens"].(map[string]interface{})
	return &auth.TokenPair{
		Access:  tokens["access"].(string),
		Refresh: tokens["refresh"].(string),
	}
}

// createSuperuser seeds an admin account and returns a valid access
// token for it.
func (e *testEnv) createSuperuser(t *testing.T) (*models.User, string) {
	t.Helper()
	hash, err := auth.HashPassword("admin-pass")
	require.NoError(t, err)

	staffID := "ADMIN-001"
	admin := &models.User{
		StaffID:      &staffID,
		FirstName:    "Ade",
		LastName:     "Admin",
		UserType:     models.UserTypeAdmin,
		PasswordHash: hash,
		IsStaff:      true,
		IsSuperuser:  true,
		IsActive:     true,
	}
	require.NoError(t, e.store.CreateUser(admin))

	pair, err := e.jwtMgr.GeneratePair(admin.ID.String())
	require.NoError(t, err)
	return admin, pair.Access
}

func staffForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
