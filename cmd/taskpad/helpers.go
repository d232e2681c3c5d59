package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fmizzell/taskpad"
	"github.com/fmizzell/taskpad/internal/config"
	"go.uber.org/zap"
)

var (
	errTaskNotFound  = errors.New("task not found")
	errAmbiguousTask = errors.New("task reference is ambiguous")
)

// getWorkspaceDir returns --workspace or the current directory
func getWorkspaceDir() (string, error) {
	if workspaceFlag != "" {
		return workspaceFlag, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return dir, nil
}

func configPath(workspaceDir string) string {
	if configFlag != "" {
		return configFlag
	}
	return config.DefaultPath(workspaceDir)
}

func currentLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// session bundles a loaded store with everything that must be released after it.
type session struct {
	cfg      *config.Config
	store    *taskpad.Store
	storage  *taskpad.Storage
	slotPath string // empty unless the slot is a file
	closers  []func() error
}

// openSession loads the config and the task collection for the workspace.
func openSession() (*session, error) {
	workspaceDir, err := getWorkspaceDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath(workspaceDir))
	if err != nil {
		return nil, err
	}

	log := currentLogger()
	s := &session{cfg: cfg}

	backend := cfg.Storage.Backend
	if ephemeral {
		backend = config.BackendMemory
	}

	var slot taskpad.Slot
	switch backend {
	case config.BackendSQLite:
		sq, err := taskpad.NewSQLiteSlot(cfg.StoragePath(workspaceDir), cfg.Storage.Key)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, sq.Close)
		slot = sq
	case config.BackendMemory:
		mem := taskpad.NewMemorySlot()
		mem.Quota = cfg.Storage.QuotaBytes
		slot = mem
	default:
		fs, err := taskpad.NewFileSlot(workspaceDir, cfg.Storage.Key)
		if err != nil {
			return nil, err
		}
		s.slotPath = fs.Path()
		slot = fs
	}

	s.storage = taskpad.NewStorage(slot, log)

	var persister taskpad.Persister = s.storage
	if d := cfg.GetDebounce(); d > 0 {
		debounced := taskpad.NewDebouncedSaver(s.storage, d)
		s.closers = append(s.closers, debounced.Close)
		persister = debounced
		log.Debug("Debouncing saves", zap.Duration("delay", d))
	}

	s.store = taskpad.NewStore(taskpad.WithPersister(persister), taskpad.WithLogger(log))
	return s, nil
}

// Close flushes pending saves before releasing storage handles.
func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// resolveID finds the task whose id equals ref or, failing that, is the
// only one starting with ref.
func resolveID(store *taskpad.Store, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty id", errTaskNotFound)
	}
	if _, ok := store.Get(ref); ok {
		return ref, nil
	}

	var matches []string
	for _, t := range store.Tasks() {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", errTaskNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d tasks", errAmbiguousTask, ref, len(matches))
	}
}

// shortID is the prefix shown in listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
