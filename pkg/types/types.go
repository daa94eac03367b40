package types

// StorageBackend identifies a concrete artifact storage implementation.
type StorageBackend string

const (
	StorageBackendLocal StorageBackend = "local"
	StorageBackendS3    StorageBackend = "s3"
	StorageBackendR2    StorageBackend = "r2"
)
