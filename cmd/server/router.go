package server

import (
	"github.com/gin-gonic/gin"

	"github.com/healthplus/identity/internal/config"
	"github.com/healthplus/identity/internal/database"
	"github.com/healthplus/identity/internal/handlers"
	"github.com/healthplus/identity/internal/middleware"
	"github.com/healthplus/identity/internal/tokenstore"
	"github.com/healthplus/identity/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	cfg *config.Config,
	store database.UserStore,
	jwtMgr *auth.JWTManager,
	tokens tokenstore.TokenStore,
	authH *handlers.AuthHandler,
	staffH *handlers.StaffHandler,
	userH *handlers.UserHandler,
) {
	authRequired := middleware.AuthMiddleware(jwtMgr, tokens, store)

	user := r.Group("/user")
	{
		user.POST("/register/student/", authH.RegisterStudent)
		user.POST("/login/", authH.Login)
		user.POST("/token/refresh/", authH.Refresh)
		user.POST("/logout/", authH.Logout)

		user.GET("/me/", authRequired, userH.GetMe)
		user.POST("/register/staff/", authRequired, middleware.RequireSuperuser(), staffH.RegisterStaff)
	}
}
