package storage

import (
	"fmt"
	"strings"

	"github.com/ZacxDev/workout-clipper/pkg/types"
)

// R2 stores artifacts in a Cloudflare R2 bucket. R2 speaks the S3 protocol,
// so uploads, deletes and existence checks are the embedded S3 client pointed
// at the account-scoped endpoint with the "auto" region; only URL
// construction and its inverse differ.
type R2 struct {
	*S3
	publicURL string
}

// NewR2 creates R2 storage. The public URL defaults to the bucket's r2.dev
// endpoint when no custom domain is configured.
func NewR2(cfg R2Config) (*R2, error) {
	if cfg.AccountID == "" {
		return nil, &ConfigError{Backend: types.StorageBackendR2, Missing: "account ID"}
	}
	if cfg.Bucket == "" {
		return nil, &ConfigError{Backend: types.StorageBackendR2, Missing: "bucket name"}
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, &ConfigError{Backend: types.StorageBackendR2, Missing: "access key and secret key"}
	}

	s3Store, err := NewS3(S3Config{
		Bucket:    cfg.Bucket,
		Region:    "auto",
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Endpoint:  fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID),
	})
	if err != nil {
		return nil, err
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.r2.dev", cfg.Bucket)
	}

	return &R2{S3: s3Store, publicURL: publicURL}, nil
}

// URL returns the configured public base URL joined with the key.
func (r *R2) URL(key string) string {
	return r.publicURL + "/" + key
}

// KeyFromURL is the inverse of URL: it strips the public base URL prefix from
// a previously issued URL to recover the original key. URLs issued under a
// different base fall back to the last path segments; that heuristic has no
// correctness guarantee for arbitrary key structures.
func (r *R2) KeyFromURL(url string) string {
	if strings.HasPrefix(url, r.publicURL+"/") {
		return strings.TrimPrefix(url, r.publicURL+"/")
	}
	if !strings.Contains(url, "/") {
		return url
	}

	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	parts := strings.Split(url, "/")
	if len(parts) > 1 {
		// Drop the host; whatever remains is the best guess at a key.
		parts = parts[1:]
	}
	return strings.Join(parts, "/")
}
