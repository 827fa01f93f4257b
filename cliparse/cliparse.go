// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults for the seeded admin account
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	UploadDriver string
	UploadDir    string
	S3Bucket     string
	S3Region     string
	S3Endpoint   string
	S3PathStyle  bool
	MaxUploadMB  int

	AdminUsername string
	AdminPassword string

	SecureCookies        bool
	TolerateUploadErrors bool
}

// LoadDotEnv loads variables from the given files (default .env) without
// overriding the real environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("request-desk", flag.ContinueOnError)

	// Network and storage
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or memory)")

	// Attachments
	fs.StringVar(&cfg.UploadDriver, "upload-driver", "", "Attachment backend (fs or s3)")
	fs.StringVar(&cfg.UploadDir, "upload-dir", "", "Upload directory for the fs backend")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", "", "S3 bucket for the s3 backend")
	fs.StringVar(&cfg.S3Region, "s3-region", "", "S3 region")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", "", "Custom S3 endpoint (e.g. MinIO)")
	fs.BoolVar(&cfg.S3PathStyle, "s3-path-style", false, "Use path-style S3 addressing")
	fs.IntVar(&cfg.MaxUploadMB, "max-upload-mb", 0, "Maximum upload size in MB")

	// Admin account (prefer env for the password)
	fs.StringVar(&cfg.AdminUsername, "admin-user", "", "Admin username seeded by /setup")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password seeded by /setup (prefer env)")

	// Policies
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", false, "Set the Secure flag on session cookies")
	fs.BoolVar(&cfg.TolerateUploadErrors, "tolerate-upload-errors", false, "Save records even when the attachment write fails")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8086 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envOr("DATABASE_TYPE", "sqlite")
	}
	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	switch cfg.DatabaseType {
	case "sqlite":
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "requestdesk.db"
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	case "memory":
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.UploadDriver == "" {
		cfg.UploadDriver = envOr("UPLOAD_DRIVER", "fs")
	}
	cfg.UploadDriver = strings.ToLower(cfg.UploadDriver)
	if cfg.UploadDir == "" {
		cfg.UploadDir = envOr("UPLOAD_DIR", "public/uploads")
	}
	if cfg.S3Bucket == "" {
		cfg.S3Bucket = os.Getenv("S3_BUCKET")
	}
	if cfg.S3Region == "" {
		cfg.S3Region = envOr("S3_REGION", "us-east-1")
	}
	if cfg.S3Endpoint == "" {
		cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	}
	if !set["s3-path-style"] {
		v, err := envBool("S3_PATH_STYLE")
		if err != nil {
			return Config{}, err
		}
		cfg.S3PathStyle = v
	}
	switch cfg.UploadDriver {
	case "fs":
	case "s3":
		if cfg.S3Bucket == "" {
			return Config{}, errors.New("S3_BUCKET required for the s3 upload driver")
		}
	default:
		return Config{}, fmt.Errorf("unknown upload driver %q", cfg.UploadDriver)
	}

	if cfg.MaxUploadMB == 0 {
		if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, errors.New("invalid MAX_UPLOAD_MB env variable")
			}
			cfg.MaxUploadMB = n
		} else {
			cfg.MaxUploadMB = 10
		}
	}
	if cfg.MaxUploadMB <= 0 {
		return Config{}, errors.New("max upload size must be positive")
	}

	if cfg.AdminUsername == "" {
		cfg.AdminUsername = envOr("ADMIN_USERNAME", DefaultAdminUsername)
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = envOr("ADMIN_PASSWORD", DefaultAdminPassword)
	}

	if !set["secure-cookies"] {
		v, err := envBool("SECURE_COOKIES")
		if err != nil {
			return Config{}, err
		}
		cfg.SecureCookies = v
	}
	if !set["tolerate-upload-errors"] {
		v, err := envBool("TOLERATE_UPLOAD_ERRORS")
		if err != nil {
			return Config{}, err
		}
		cfg.TolerateUploadErrors = v
	}

	return cfg, nil
}

// MaxUploadBytes returns the upload limit in bytes
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s env variable", key)
	}
	return b, nil
}
