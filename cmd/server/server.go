package server

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/healthplus/identity/internal/config"
	"github.com/healthplus/identity/internal/database"
	"github.com/healthplus/identity/internal/handlers"
	"github.com/healthplus/identity/internal/storage"
	"github.com/healthplus/identity/internal/tokenstore"
	"github.com/healthplus/identity/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	Config     *config.Config
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
}

func NewServer() *Server {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}
	tokens := tokenstore.NewRedisStore(rdb)

	images, err := storage.NewMinioStorage(cfg.Minio)
	if err != nil {
		log.Fatalf("MinIO setup failed: %v", err)
	}
	if err := images.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("MinIO bucket check failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, tokens, cfg)
	staffH := handlers.NewStaffHandler(dbConn, images, cfg)
	userH := handlers.NewUserHandler(cfg)

	router := gin.Default()
	APIEndpoints(router, cfg, dbConn, jwtMgr, tokens, authH, staffH, userH)

	return &Server{
		Router:     router,
		Config:     cfg,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
	}
}

func (s *Server) Run() {
	log.Printf("Server starting on port %s", s.Config.Port)
	if err := s.Router.Run(":" + s.Config.Port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
