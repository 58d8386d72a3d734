// internal/infra/config/config.go
package config

import (
	"os"
	"strconv"
)

// Config holds the environment configuration for the whole service.
// Values may be literal or "sm://projects/.../secrets/..." references,
// which the DI layer resolves through Secret Manager.
type Config struct {
	Port string

	// GCP / Firestore / Firebase
	GCPCreds                 string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// Durable asset tier (PostgreSQL). Empty means the tier is disabled
	// and resolution starts at the session tiers.
	DatabaseURL string

	// Hosted asset endpoint (default uploader)
	UploadEndpoint string
	UploadPreset   string
	UploadAPIKey   string
	UploadFolder   string

	// Alternative uploader backend: "" / "http" (default) or "gcs"
	AssetHostMode string
	AssetBucket   string

	// Downstream order service
	OrderServiceURL    string
	OrderServiceAPIKey string

	// Mail
	SendGridAPIKey string
	MailFrom       string

	// Firestore collections and asset keying
	SessionAssetCollection string
	CartsCollection        string
	AssetKeyPrefix         string

	// Size cap for the compressed session tier, in bytes (0 = default).
	CompressedCapBytes int64
}

// Load reads the environment and returns a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "framecraft-checkout")

	cfg := &Config{
		Port: getenvDefault("PORT", "8080"),

		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		UploadEndpoint: os.Getenv("UPLOAD_ENDPOINT"),
		UploadPreset:   os.Getenv("UPLOAD_PRESET"),
		UploadAPIKey:   os.Getenv("UPLOAD_API_KEY"),
		UploadFolder:   getenvDefault("UPLOAD_FOLDER", "orders"),

		AssetHostMode: getenvDefault("ASSET_HOST_MODE", "http"),
		AssetBucket:   os.Getenv("ASSET_BUCKET"),

		OrderServiceURL:    os.Getenv("ORDER_SERVICE_URL"),
		OrderServiceAPIKey: os.Getenv("ORDER_SERVICE_API_KEY"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getenvDefault("MAIL_FROM", "orders@framecraft.app"),

		SessionAssetCollection: getenvDefault("SESSION_ASSET_COLLECTION", "session_assets"),
		CartsCollection:        getenvDefault("CARTS_COLLECTION", "carts"),
		AssetKeyPrefix:         getenvDefault("ASSET_KEY_PREFIX", "cartimg"),

		CompressedCapBytes: getenvInt64("COMPRESSED_CAP_BYTES", 0),
	}

	return cfg
}

// GetFirestoreProjectID returns the Firestore/GCP project id.
func (c *Config) GetFirestoreProjectID() string {
	return c.FirestoreProjectID
}

// GetFirebaseProjectID returns the project id used for Firebase Auth.
func (c *Config) GetFirebaseProjectID() string {
	return c.FirebaseProjectID
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
