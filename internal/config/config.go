package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBDriver       string // "sqlite" or "mongo"
	DBDSN          string
	MongoURI       string
	MongoDatabase  string
	SeedDemo       bool
	BlobBackend    string // "local" or "s3"
	UploadDir      string
	S3Bucket       string
	AWSRegion      string
	JWTSecret      string
	AccessTokenTTL time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CacheTTL       time.Duration
	CORSOrigins    string
	BodyLimitMB    int
	LogFile        string
	LogFormat      string
	LogLevel       string
}

// Load reads the environment, after merging a .env file when one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           env("PORT", "8000"),
		DBDriver:       strings.ToLower(env("DB_DRIVER", "sqlite")),
		DBDSN:          env("DB_DSN", "dreamhome.db"),
		MongoURI:       env("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:  env("MONGODB_DATABASE", "dreamhome"),
		SeedDemo:       envBool("SEED_DEMO", false),
		BlobBackend:    strings.ToLower(env("BLOB_BACKEND", "local")),
		UploadDir:      env("UPLOAD_DIR", "uploads"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		AWSRegion:      env("AWS_REGION", "us-east-1"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: envDuration("ACCESS_TOKEN_TTL", 60*time.Minute),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),
		CacheTTL:       envDuration("CACHE_TTL", time.Minute),
		CORSOrigins:    env("CORS_ORIGINS", "*"),
		BodyLimitMB:    envInt("BODY_LIMIT_MB", 600),
		LogFile:        os.Getenv("LOG_FILE"),
		LogFormat:      env("LOG_FORMAT", "json"),
		LogLevel:       env("LOG_LEVEL", "info"),
	}
}

// Summary lists the settings that are safe to log.
func (c Config) Summary() map[string]any {
	return map[string]any{
		"port":         c.Port,
		"db_driver":    c.DBDriver,
		"db_dsn":       c.DBDSN,
		"blob_backend": c.BlobBackend,
		"upload_dir":   c.UploadDir,
		"cache":        c.RedisAddr != "",
		"log_file":     c.LogFile,
	}
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	n, err := strconv.Atoi(env(key, ""))
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	b, err := strconv.ParseBool(env(key, ""))
	if err != nil {
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(env(key, ""))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
