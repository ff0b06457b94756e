// Package storage abstracts file storage behind a Disk interface with
// interchangeable drivers. The storefront keeps product images on a disk
// and serves them back through GET /storage/*.
//
// Two drivers ship by default:
//
//   - "local": files under STORAGE_LOCAL_ROOT on the local filesystem
//   - "s3":    any S3-compatible bucket (AWS, MinIO, R2, Spaces)
//
// Use the package-level helpers for the default disk, or pick one explicitly:
//
//	storage.Put("images/1/front.jpg", data)
//	storage.Use("s3").Put("images/1/front.jpg", data)
package storage

import (
	"io"
	"time"
)

// Disk is the interface all storage drivers implement.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error
	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)
	// GetStream returns a reader for the file at path. Caller closes.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool
	// Missing is the negation of Exists.
	Missing(path string) bool
	// Size returns the file size in bytes.
	Size(path string) (int64, error)
	// LastModified returns the file's last-modified time.
	LastModified(path string) (time.Time, error)
	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes the file at path. Deleting a missing file is not an error.
	Delete(path string) error

	// Files lists files directly under directory (non-recursive).
	Files(directory string) ([]string, error)
	// AllFiles lists every file under directory, recursively.
	AllFiles(directory string) ([]string, error)
	// MakeDirectory creates directory (no-op on object stores).
	MakeDirectory(path string) error
}
