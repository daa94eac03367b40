// Package config assembles process-wide configuration from the environment.
// A .env file is honored for local development but never overrides variables
// already set in the real environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ZacxDev/workout-clipper/internal/storage"
	"github.com/ZacxDev/workout-clipper/pkg/types"
)

const (
	DefaultOutputFolder    = "output"
	DefaultVideoCodec      = "libx264"
	DefaultVideoPreset     = "medium"
	DefaultVideoCRF        = 23
	DefaultThumbnailWidth  = 320
	DefaultThumbnailHeight = 180

	EnvOutputFolder    = "OUTPUT_FOLDER"
	EnvVideoCodec      = "VIDEO_CODEC"
	EnvVideoPreset     = "VIDEO_PRESET"
	EnvVideoCRF        = "VIDEO_CRF"
	EnvThumbnailWidth  = "THUMBNAIL_WIDTH"
	EnvThumbnailHeight = "THUMBNAIL_HEIGHT"

	EnvStorageBackend   = "STORAGE_BACKEND"
	EnvLocalStoragePath = "LOCAL_STORAGE_PATH"
	EnvS3BucketName     = "S3_BUCKET_NAME"
	EnvS3Region         = "S3_REGION"
	EnvS3AccessKey      = "S3_ACCESS_KEY"
	EnvS3SecretKey      = "S3_SECRET_KEY"
	EnvS3EndpointURL    = "S3_ENDPOINT_URL"
	EnvR2AccountID      = "R2_ACCOUNT_ID"
	EnvR2BucketName     = "R2_BUCKET_NAME"
	EnvR2AccessKey      = "R2_ACCESS_KEY"
	EnvR2SecretKey      = "R2_SECRET_KEY"
	EnvR2PublicURL      = "R2_PUBLIC_URL"
)

// Config is constructed once at startup and passed by reference into the
// orchestrator and storage factory.
type Config struct {
	OutputFolder    string
	VideoCodec      string
	VideoPreset     string
	VideoCRF        int
	ThumbnailWidth  int
	ThumbnailHeight int

	Storage storage.Config
}

// Load builds a Config from the environment and validates it.
func Load() (*Config, error) {
	// Best effort; a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		OutputFolder: getEnv(EnvOutputFolder, DefaultOutputFolder),
		VideoCodec:   getEnv(EnvVideoCodec, DefaultVideoCodec),
		VideoPreset:  getEnv(EnvVideoPreset, DefaultVideoPreset),
	}

	var err error
	if cfg.VideoCRF, err = getEnvInt(EnvVideoCRF, DefaultVideoCRF); err != nil {
		return nil, err
	}
	if cfg.ThumbnailWidth, err = getEnvInt(EnvThumbnailWidth, DefaultThumbnailWidth); err != nil {
		return nil, err
	}
	if cfg.ThumbnailHeight, err = getEnvInt(EnvThumbnailHeight, DefaultThumbnailHeight); err != nil {
		return nil, err
	}

	cfg.Storage = storage.Config{
		Backend: types.StorageBackend(getEnv(EnvStorageBackend, string(types.StorageBackendLocal))),
		Local: storage.LocalConfig{
			Path: getEnv(EnvLocalStoragePath, DefaultOutputFolder),
		},
		S3: storage.S3Config{
			Bucket:    os.Getenv(EnvS3BucketName),
			Region:    getEnv(EnvS3Region, "us-east-1"),
			AccessKey: os.Getenv(EnvS3AccessKey),
			SecretKey: os.Getenv(EnvS3SecretKey),
			Endpoint:  os.Getenv(EnvS3EndpointURL),
		},
		R2: storage.R2Config{
			AccountID: os.Getenv(EnvR2AccountID),
			Bucket:    os.Getenv(EnvR2BucketName),
			AccessKey: os.Getenv(EnvR2AccessKey),
			SecretKey: os.Getenv(EnvR2SecretKey),
			PublicURL: os.Getenv(EnvR2PublicURL),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the selected storage backend has everything it needs and
// that encode parameters are in range. All problems are reported together.
func (c *Config) Validate() error {
	var errs []string

	if c.VideoCRF < 0 || c.VideoCRF > 51 {
		errs = append(errs, fmt.Sprintf("%s must be between 0 and 51", EnvVideoCRF))
	}
	if c.ThumbnailWidth <= 0 || c.ThumbnailHeight <= 0 {
		errs = append(errs, "thumbnail dimensions must be positive")
	}

	switch c.Storage.Backend {
	case types.StorageBackendLocal, "":
	case types.StorageBackendS3:
		if c.Storage.S3.Bucket == "" {
			errs = append(errs, fmt.Sprintf("%s is required for S3 storage", EnvS3BucketName))
		}
		if c.Storage.S3.AccessKey == "" || c.Storage.S3.SecretKey == "" {
			errs = append(errs, fmt.Sprintf("%s and %s are required for S3 storage", EnvS3AccessKey, EnvS3SecretKey))
		}
	case types.StorageBackendR2:
		if c.Storage.R2.AccountID == "" {
			errs = append(errs, fmt.Sprintf("%s is required for R2 storage", EnvR2AccountID))
		}
		if c.Storage.R2.Bucket == "" {
			errs = append(errs, fmt.Sprintf("%s is required for R2 storage", EnvR2BucketName))
		}
		if c.Storage.R2.AccessKey == "" || c.Storage.R2.SecretKey == "" {
			errs = append(errs, fmt.Sprintf("%s and %s are required for R2 storage", EnvR2AccessKey, EnvR2SecretKey))
		}
	default:
		errs = append(errs, fmt.Sprintf("unsupported storage backend: %s", c.Storage.Backend))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}
