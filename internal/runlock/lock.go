// Package runlock keeps two runs on the same host from writing to the same
// target catalog at once.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/agentstation/boorusync/pkg/constants"
	"github.com/agentstation/boorusync/pkg/errors"
)

// Lock is a held advisory file lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// DefaultDir is where lock files live when no directory is configured.
func DefaultDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, constants.AppName)
	}
	return filepath.Join(os.TempDir(), constants.AppName)
}

// PathFor returns the lock file path for target inside dir. Targets that
// differ only by a trailing slash or surrounding space share a lock.
func PathFor(dir, target string) string {
	if dir == "" {
		dir = DefaultDir()
	}
	normalized := strings.TrimRight(strings.TrimSpace(target), "/")
	sum := sha256.Sum256([]byte(strings.ToLower(normalized)))
	return filepath.Join(dir, constants.AppName+"-"+hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the lock for target without blocking. It fails with an
// error matching errors.ErrLocked when another process holds it.
func Acquire(dir, target string) (*Lock, error) {
	path := PathFor(dir, target)
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", filepath.Dir(path), err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, errors.WrapIO("lock", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s (lock file %s)", errors.ErrLocked, target, path)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks. The lock file itself is left in place.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return errors.WrapIO("unlock", l.path, err)
	}
	return nil
}
