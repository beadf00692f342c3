package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL prefixes object keys in stored attachment URLs.
	PublicURL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// UnreadTTL bounds how stale a cached unread count may get.
	UnreadTTL time.Duration
}

type Config struct {
	Port             string
	MongoURI         string
	MongoDB          string
	JWTSecret        string
	JWTTTL           time.Duration
	EmailDomain      string
	CORSOrigins      string
	LogLevel         string
	LogFormat        string
	ShiftReviewScope string
	UploadDir        string
	MinIO            MinIOConfig
	Redis            RedisConfig
	OTLPEndpoint     string
	OTLPInsecure     bool
	SeedOnStart      bool
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "flux")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("EMAIL_DOMAIN", "@varnion.net.id")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHIFT_REVIEW_SCOPE", "exact")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("MINIO_BUCKET", "flux")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("UNREAD_CACHE_TTL", "30s")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("SEED_ON_START", false)
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (Config, error) {
	// Missing .env is normal in containers.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	defaults(v)

	cfg := Config{
		Port:             v.GetString("PORT"),
		MongoURI:         v.GetString("MONGO_URI"),
		MongoDB:          v.GetString("MONGO_DB"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTTTL:           v.GetDuration("JWT_TTL"),
		EmailDomain:      v.GetString("EMAIL_DOMAIN"),
		CORSOrigins:      v.GetString("CORS_ORIGINS"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		ShiftReviewScope: v.GetString("SHIFT_REVIEW_SCOPE"),
		UploadDir:        v.GetString("UPLOAD_DIR"),
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			PublicURL: strings.TrimRight(v.GetString("MINIO_PUBLIC_URL"), "/"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("REDIS_ADDR"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			UnreadTTL: v.GetDuration("UNREAD_CACHE_TTL"),
		},
		OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure: v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
		SeedOnStart:  v.GetBool("SEED_ON_START"),
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}
