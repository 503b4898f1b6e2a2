package prefs

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/kirsle/configdir"
	"github.com/pkg/errors"
)

const AppName = "docview"

// File keeps preferences as a JSON object in the user config directory.
type File struct {
	dir    string
	mutex  sync.RWMutex
	values map[string]string
}

func NewFile() *File {
	return NewFileAt(configdir.LocalConfig(AppName))
}

func NewFileAt(dir string) *File {
	return &File{dir: dir}
}

func (f *File) Path() string {
	return filepath.Join(f.dir, "preferences.json")
}

func (f *File) Get(key, fallback string) string {
	f.mutex.RLock()
	loaded := f.values != nil
	if loaded {
		defer f.mutex.RUnlock()
		if v, ok := f.values[key]; ok {
			return v
		}
		return fallback
	}
	f.mutex.RUnlock()

	f.mutex.Lock()
	defer f.mutex.Unlock()
	if err := f.loadLocked(); err != nil {
		slog.Warn("could not read preferences", slog.Any("error", errors.WithStack(err)))
		return fallback
	}
	if v, ok := f.values[key]; ok {
		return v
	}
	return fallback
}

func (f *File) Set(key, value string) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.values == nil {
		if err := f.loadLocked(); err != nil {
			f.values = make(map[string]string)
		}
	}
	f.values[key] = value

	return f.saveLocked()
}

func (f *File) loadLocked() error {
	if f.values != nil {
		return nil
	}

	file, err := os.Open(f.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.values = make(map[string]string)
			return nil
		}
		return errors.WithStack(err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("could not close preferences file", slog.Any("error", errors.WithStack(err)))
		}
	}()

	values := make(map[string]string)
	if err := json.NewDecoder(file).Decode(&values); err != nil {
		return errors.WithStack(err)
	}

	f.values = values
	return nil
}

func (f *File) saveLocked() error {
	if err := configdir.MakePath(f.dir); err != nil {
		return errors.WithStack(err)
	}

	tmp, err := os.CreateTemp(f.dir, "preferences-*.json")
	if err != nil {
		return errors.WithStack(err)
	}

	defer func() {
		if err := os.Remove(tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Error("could not remove temporary preferences file", slog.Any("error", errors.WithStack(err)))
		}
	}()

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(f.values); err != nil {
		_ = tmp.Close()
		return errors.WithStack(err)
	}

	if err := tmp.Close(); err != nil {
		return errors.WithStack(err)
	}

	if err := os.Rename(tmp.Name(), f.Path()); err != nil {
		return errors.Wrap(err, "could not overwrite preferences")
	}

	return nil
}
