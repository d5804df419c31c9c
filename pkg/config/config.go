package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort string

	// Database
	DBDriver   string // "postgres" or "sqlite"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string

	// Gallery access product
	GalleryPriceCents  int64
	GalleryCurrency    string
	GalleryProductName string
	GalleryProductDesc string

	// Tipping
	TipMinCents      int64
	TipMaxCents      int64
	TipMessageMaxLen int

	// Sessions
	UserSessionTTLSeconds  int
	AdminSessionTTLSeconds int

	// Admin CMS credentials
	AdminUsername     string
	AdminPasswordHash string

	// Gallery media
	GalleryDataFile string
	MediaStorage    string // "local" or "s3"
	MediaRoot       string
	ImageDir        string
	VideoDir        string
	MaxUploadBytes  int64

	// AWS S3 (when MediaStorage == "s3")
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3BucketName       string
	S3UseSSL           string

	// Booking notifications (EmailJS)
	EmailJSEndpoint   string
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string
	BookingRecipient  string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	config := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "velvetroom"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "velvetroom.db"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       0,

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),

		GalleryPriceCents:  getEnvInt64("GALLERY_PRICE_CENTS", 1999),
		GalleryCurrency:    getEnv("GALLERY_CURRENCY", "usd"),
		GalleryProductName: getEnv("GALLERY_PRODUCT_NAME", "Gallery Access - Lifetime"),
		GalleryProductDesc: getEnv("GALLERY_PRODUCT_DESC", "One-time purchase for permanent gallery access"),

		TipMinCents:      getEnvInt64("TIP_MIN_CENTS", 100),
		TipMaxCents:      getEnvInt64("TIP_MAX_CENTS", 100000),
		TipMessageMaxLen: getEnvInt("TIP_MESSAGE_MAX_LEN", 500),

		UserSessionTTLSeconds:  getEnvInt("USER_SESSION_TTL_SECONDS", 86400),
		AdminSessionTTLSeconds: getEnvInt("ADMIN_SESSION_TTL_SECONDS", 3600),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		GalleryDataFile: getEnv("GALLERY_DATA_FILE", "gallery-data.json"),
		MediaStorage:    getEnv("MEDIA_STORAGE", "local"),
		MediaRoot:       getEnv("MEDIA_ROOT", "."),
		ImageDir:        getEnv("IMAGE_DIR", "uploads/images"),
		VideoDir:        getEnv("VIDEO_DIR", "uploads/videos"),
		MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", 100*1024*1024),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpoint:        getEnv("AWS_ENDPOINT", ""),
		S3BucketName:       getEnv("S3_BUCKET_NAME", "velvetroom-media"),
		S3UseSSL:           getEnv("S3_USE_SSL", "true"),

		EmailJSEndpoint:   getEnv("EMAILJS_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send"),
		EmailJSServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),
		EmailJSPublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
		EmailJSPrivateKey: getEnv("EMAILJS_PRIVATE_KEY", ""),
		BookingRecipient:  getEnv("BOOKING_RECIPIENT", ""),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
