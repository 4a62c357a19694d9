package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DeactivatedLoginPolicy controls what a deactivated account sees after
// presenting a correct password.
type DeactivatedLoginPolicy string

const (
	// PolicyReveal returns a distinct "account deactivated" error. The
	// caller has already proved password knowledge at that point.
	PolicyReveal DeactivatedLoginPolicy = "reveal"
	// PolicyUniform answers with the same invalid-credentials error as
	// an unknown identifier or wrong password.
	PolicyUniform DeactivatedLoginPolicy = "uniform"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	DefaultStaffPassword    string
	DefaultProfileImageURL  string
	StaffRegisterRedirect   string
	DeactivatedPolicy       DeactivatedLoginPolicy

	Minio MinioConfig
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// Load reads .env.local, then .env, then falls back to process env.
func Load() *Config {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	policy := DeactivatedLoginPolicy(getEnv("DEACTIVATED_LOGIN_POLICY", string(PolicyReveal)))
	if policy != PolicyReveal && policy != PolicyUniform {
		log.Printf("unknown DEACTIVATED_LOGIN_POLICY %q, using %q", policy, PolicyReveal)
		policy = PolicyReveal
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 168*time.Hour),

		DefaultStaffPassword:   getEnv("DEFAULT_STAFF_PASSWORD", "healthplus"),
		DefaultProfileImageURL: getEnv("DEFAULT_PROFILE_IMAGE_URL", ""),
		StaffRegisterRedirect:  getEnv("STAFF_REGISTER_REDIRECT", "/user/register/staff/"),
		DeactivatedPolicy:      policy,

		Minio: MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getEnv("MINIO_BUCKET", "staff-id-images"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: os.Getenv("MINIO_PUBLIC_URL"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration in %s: %v", key, err)
		return fallback
	}
	return d
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
