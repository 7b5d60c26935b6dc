package upload

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage stages uploaded files on disk for the duration of a request
type Storage interface {
	// Save writes data under filename, replacing any file of the same name,
	// and returns the staged name
	Save(filename string, data []byte) (string, error)

	// Get reads a staged file
	Get(name string) ([]byte, error)

	// Path returns the on-disk location of a staged file
	Path(name string) string
}

// LocalStorage implements the Storage interface using a local directory
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// Save writes the file named after the upload. Only the base name is kept so
// a client cannot write outside the upload directory.
func (l *LocalStorage) Save(filename string, data []byte) (string, error) {
	name := filepath.Base(filepath.Clean("/" + filename))
	if name == "/" || name == "." {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	if err := os.WriteFile(l.Path(name), data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return name, nil
}

// Get reads a staged file
func (l *LocalStorage) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(l.Path(name))
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Path joins name onto the upload directory
func (l *LocalStorage) Path(name string) string {
	return filepath.Join(l.basePath, name)
}
