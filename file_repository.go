package taskpad

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// FileSlot stores the slot as <workspace>/.taskpad/<key>.json.
// No caching - every call goes to disk. Writers replace the file with a
// rename, so readers see either the old contents or the new, never a mix.
// A sibling .lock file serializes access across processes.
type FileSlot struct {
	filePath string
	lockPath string
}

// NewFileSlot creates the .taskpad directory if needed and returns a slot for key.
func NewFileSlot(workspaceDir, key string) (*FileSlot, error) {
	if key == "" {
		key = DefaultSlotKey
	}
	filePath := filepath.Join(workspaceDir, ".taskpad", key+".json")

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create .taskpad directory: %w", err)
	}

	return &FileSlot{
		filePath: filePath,
		lockPath: filePath + ".lock",
	}, nil
}

// Path returns the file backing the slot.
func (s *FileSlot) Path() string {
	return s.filePath
}

// Read returns the file contents
// Shared lock → Read → Unlock
func (s *FileSlot) Read() ([]byte, error) {
	var data []byte
	err := s.withLock(syscall.LOCK_SH, func() error {
		var err error
		data, err = os.ReadFile(s.filePath)
		if os.IsNotExist(err) {
			data = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write replaces the file contents
// Exclusive lock → Write temp → Sync → Rename → Sync dir → Unlock
func (s *FileSlot) Write(data []byte) error {
	return s.withLock(syscall.LOCK_EX, func() error {
		return s.replace(data)
	})
}

// Remove deletes the file. A missing file is not an error.
func (s *FileSlot) Remove() error {
	return s.withLock(syscall.LOCK_EX, func() error {
		if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove file: %w", err)
		}
		return nil
	})
}

// replace writes data to a temp file next to the slot and renames it into
// place. On any failure the previous contents stay intact.
func (s *FileSlot) replace(data []byte) error {
	dir := filepath.Dir(s.filePath)

	tmp, err := os.CreateTemp(dir, filepath.Base(s.filePath)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.filePath); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	committed = true

	return syncDir(dir)
}

// withLock executes a function holding the slot's lock file
func (s *FileSlot) withLock(how int, fn func() error) error {
	lock, err := os.OpenFile(s.lockPath, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	defer lock.Close()

	if err := syscall.Flock(int(lock.Fd()), how); err != nil {
		return fmt.Errorf("failed to lock file: %w", err)
	}
	defer syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)

	return fn()
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}
	defer d.Close()

	if err := d.Sync(); err != nil {
		return fmt.Errorf("failed to sync directory: %w", err)
	}
	return nil
}
