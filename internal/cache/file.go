package cache

import (
	"context"
	"errors"
	"fmt"
	"mintlog/internal/crypto"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/sys/unix"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

const lockFileName string = ".lock"

// Creates a directory backed store. Directory is created on first write.
// A non-empty secret seals every value at rest.
func NewFile(dir string, secret []byte) (new *File, err error) {
	if dir == "" {
		err = fmt.Errorf("cache directory must not be empty")
		return
	}

	new = &File{
		dir:    filepath.Clean(dir),
		secret: append([]byte(nil), secret...),
	}
	return
}

func (store *File) Get(ctx context.Context, group string, key string) (value []byte, found bool, err error) {
	path, err := store.path(group, key)
	if err != nil {
		return
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
		return
	} else if err != nil {
		err = fmt.Errorf("failed to read cache entry: %w", err)
		return
	}

	if len(store.secret) > 0 {
		data, err = crypto.Open(data, append([]byte(nil), store.secret...), group+"/"+key)
		if err != nil {
			err = fmt.Errorf("failed to open cache entry '%s/%s': %w", group, key, err)
			return
		}
	}

	value = data
	found = true
	return
}

// Writes to a temporary file and renames over the entry while holding the group lock
func (store *File) Set(ctx context.Context, group string, key string, value []byte) (err error) {
	path, err := store.path(group, key)
	if err != nil {
		return
	}

	data := value
	if len(store.secret) > 0 {
		data, err = crypto.Seal(value, append([]byte(nil), store.secret...), group+"/"+key)
		if err != nil {
			return
		}
	}

	groupDir := filepath.Dir(path)
	err = os.MkdirAll(groupDir, 0700)
	if err != nil {
		err = fmt.Errorf("failed to create cache directory '%s': %w", groupDir, err)
		return
	}

	unlock, err := lockDir(groupDir)
	if err != nil {
		return
	}
	defer unlock()

	tmp, err := os.CreateTemp(groupDir, "."+key+".*")
	if err != nil {
		err = fmt.Errorf("failed to create temporary cache file: %w", err)
		return
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after successful rename

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		err = fmt.Errorf("failed to write cache entry: %w", err)
		return
	}

	err = os.Rename(tmpName, path)
	if err != nil {
		err = fmt.Errorf("failed to replace cache entry: %w", err)
		return
	}
	return
}

func (store *File) Delete(ctx context.Context, group string, key string) (err error) {
	path, err := store.path(group, key)
	if err != nil {
		return
	}

	groupDir := filepath.Dir(path)
	_, err = os.Stat(groupDir)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
		return
	}

	unlock, err := lockDir(groupDir)
	if err != nil {
		return
	}
	defer unlock()

	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
	} else if err != nil {
		err = fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return
}

// Resolves entry path, rejecting names that could escape the cache directory
func (store *File) path(group string, key string) (path string, err error) {
	if !validName.MatchString(group) || group == "." || group == ".." {
		err = fmt.Errorf("invalid cache group name '%s'", group)
		return
	}
	if !validName.MatchString(key) || key == "." || key == ".." || key == lockFileName {
		err = fmt.Errorf("invalid cache key name '%s'", key)
		return
	}
	path = filepath.Join(store.dir, group, key)
	return
}

// Takes an exclusive advisory lock on the group directory lock file
func lockDir(dir string) (unlock func(), err error) {
	lockFile, err := os.OpenFile(filepath.Join(dir, lockFileName), os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		err = fmt.Errorf("failed to open cache lock: %w", err)
		return
	}

	err = unix.Flock(int(lockFile.Fd()), unix.LOCK_EX)
	if err != nil {
		lockFile.Close()
		err = fmt.Errorf("failed to lock cache directory: %w", err)
		return
	}

	unlock = func() {
		unix.Flock(int(lockFile.Fd()), unix.LOCK_UN)
		lockFile.Close()
	}
	return
}
