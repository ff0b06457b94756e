package storage

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/shashiranjanraj/lumina/config"
	"github.com/shashiranjanraj/lumina/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at startup.
//
// The local disk always boots. The S3 disk boots only when S3_BUCKET is
// set; a misconfigured S3 disk is logged and skipped rather than fatal so
// a dev machine without credentials still serves images locally.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()

	disks["local"] = newLocalDisk()

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk. Panics on an unknown name, which indicates
// a wiring bug rather than a runtime condition.
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation (used by tests).
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

func defaultD() Disk { return Use(defaultDisk) }

// The helpers below proxy to the default disk (STORAGE_DISK, default "local").

func Put(path string, content []byte) error      { return defaultD().Put(path, content) }
func PutStream(path string, r io.Reader) error   { return defaultD().PutStream(path, r) }
func Get(path string) ([]byte, error)            { return defaultD().Get(path) }
func GetStream(path string) (io.ReadCloser, error) { return defaultD().GetStream(path) }
func Exists(path string) bool                    { return defaultD().Exists(path) }
func Missing(path string) bool                   { return defaultD().Missing(path) }
func Size(path string) (int64, error)            { return defaultD().Size(path) }
func LastModified(path string) (time.Time, error) { return defaultD().LastModified(path) }
// URL degrades to the bare path when no disk is booted so view code can
// call it unconditionally.
func URL(path string) string {
	managerMu.RLock()
	d, ok := disks[defaultDisk]
	managerMu.RUnlock()
	if !ok {
		return path
	}
	return d.URL(path)
}
func Delete(path string) error                   { return defaultD().Delete(path) }
func Files(dir string) ([]string, error)         { return defaultD().Files(dir) }
func AllFiles(dir string) ([]string, error)      { return defaultD().AllFiles(dir) }
func MakeDirectory(path string) error            { return defaultD().MakeDirectory(path) }
