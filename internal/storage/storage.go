package storage

import (
	"fmt"
	"io"

	"github.com/ZacxDev/workout-clipper/pkg/types"
)

// Storage persists clip and thumbnail artifacts and issues durable URLs.
// Keys are backend-relative, slash-separated paths (e.g. "folder/seg001.mp4");
// URLs are what gets persisted downstream and served to clients.
type Storage interface {
	// Save writes the bytes from r under folder/filename (filename is
	// sanitized first) and returns the storage key.
	Save(r io.Reader, filename, folder string) (string, error)

	// SaveFile uploads an existing local file under folder/filename.
	SaveFile(path, filename, folder string) (string, error)

	// Delete removes an object. It reports false, not an error, when the
	// object does not exist, so cleanup stays idempotent.
	Delete(key string) (bool, error)

	// Exists reports whether an object is present under the key.
	Exists(key string) (bool, error)

	// URL returns the externally resolvable locator for a key.
	URL(key string) string

	// LocalPath returns a real filesystem path for the key. Object-store
	// backends report false, signaling that no local file access is possible.
	LocalPath(key string) (string, bool)
}

// KeyMapper recovers a storage key from a previously issued URL. Deletion is
// driven by stored URLs, never original keys, so backends whose URLs are not
// trivially invertible implement this.
type KeyMapper interface {
	KeyFromURL(url string) string
}

// ConfigError reports a misconfigured backend, detected at construction time
// before any I/O is attempted.
type ConfigError struct {
	Backend types.StorageBackend
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s is required for %s storage", e.Missing, e.Backend)
}

// Config selects and parameterizes a backend. It is built once at process
// start and is immutable for the process lifetime.
type Config struct {
	Backend types.StorageBackend
	Local   LocalConfig
	S3      S3Config
	R2      R2Config
}

// LocalConfig parameterizes filesystem storage.
type LocalConfig struct {
	Path string
}

// S3Config parameterizes AWS S3 (or S3-compatible) storage.
type S3Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the AWS endpoint for S3-compatible services.
	Endpoint string
}

// R2Config parameterizes Cloudflare R2 storage.
type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicURL is the base under which objects are served (a custom domain
	// or the default r2.dev endpoint when empty).
	PublicURL string
}

// New constructs the storage backend selected by cfg.
func New(cfg Config) (Storage, error) {
	switch cfg.Backend {
	case types.StorageBackendLocal, "":
		return NewLocal(cfg.Local)
	case types.StorageBackendS3:
		return NewS3(cfg.S3)
	case types.StorageBackendR2:
		return NewR2(cfg.R2)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}

// makeKey composes the object key for a sanitized filename under a folder.
func makeKey(folder, safeFilename string) string {
	if folder == "" {
		return safeFilename
	}
	return folder + "/" + safeFilename
}
