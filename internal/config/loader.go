package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the configuration file looked for when no explicit
// path is given.
const DefaultFileName = "keytrigger.toml"

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Loader reads and parses a configuration document.
type Loader struct {
	fsys FileSystem
}

// NewLoader creates a Loader backed by fsys. A nil fsys uses the OS file
// system.
func NewLoader(fsys FileSystem) *Loader {
	if fsys == nil {
		fsys = OSFS{}
	}
	return &Loader{fsys: fsys}
}

// Resolve locates the configuration file. An explicit path wins; otherwise
// the working directory is tried first, then the directory holding the
// executable. Returns ErrNotFound when neither exists.
func (l *Loader) Resolve(explicit string) (string, error) {
	if explicit != "" {
		if _, err := l.fsys.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, explicit)
		}
		return explicit, nil
	}
	if _, err := l.fsys.Stat(DefaultFileName); err == nil {
		return DefaultFileName, nil
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), DefaultFileName)
		if _, err := l.fsys.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, DefaultFileName)
}

// Load reads and parses the document at path.
func (l *Loader) Load(path string) (*Document, error) {
	data, err := l.fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a TOML document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &doc, nil
}
