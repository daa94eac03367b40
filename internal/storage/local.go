package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ZacxDev/workout-clipper/pkg/util"
)

// Local stores artifacts on the local filesystem under a base directory. Keys
// are slash-separated paths relative to that base; URLs point at the
// in-process download route.
type Local struct {
	basePath string
}

// NewLocal creates local storage rooted at cfg.Path, creating the directory
// if needed.
func NewLocal(cfg LocalConfig) (*Local, error) {
	basePath := cfg.Path
	if basePath == "" {
		basePath = "output"
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, errors.Wrap(err, "error creating storage directory")
	}
	return &Local{basePath: basePath}, nil
}

func (l *Local) Save(r io.Reader, filename, folder string) (string, error) {
	safeFilename := util.SanitizeFilename(filename)
	key := makeKey(folder, safeFilename)

	fullPath := filepath.Join(l.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", errors.Wrap(err, "error creating folder")
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", errors.Wrapf(err, "error creating file %s", fullPath)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", errors.Wrapf(err, "error writing file %s", fullPath)
	}

	return key, nil
}

func (l *Local) SaveFile(path, filename, folder string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "error opening source file %s", path)
	}
	defer src.Close()

	return l.Save(src, filename, folder)
}

func (l *Local) Delete(key string) (bool, error) {
	fullPath := filepath.Join(l.basePath, filepath.FromSlash(key))
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "error deleting file %s", key)
	}
	if err := os.Remove(fullPath); err != nil {
		return false, errors.Wrapf(err, "error deleting file %s", key)
	}
	return true, nil
}

func (l *Local) Exists(key string) (bool, error) {
	_, err := os.Stat(filepath.Join(l.basePath, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (l *Local) URL(key string) string {
	return "/download/" + key
}

func (l *Local) LocalPath(key string) (string, bool) {
	fullPath := filepath.Join(l.basePath, filepath.FromSlash(key))
	if _, err := os.Stat(fullPath); err != nil {
		return "", false
	}
	return fullPath, true
}
