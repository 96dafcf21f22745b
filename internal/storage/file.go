// ABOUTME: JSON file store kept in the XDG config directory
// ABOUTME: Default session backend; the file is readable only by its owner

package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileName is the name of the session file inside the config directory.
const FileName = "session.json"

// FileStore persists all keys in a single JSON object.
type FileStore struct {
	configDir string
	mu        sync.Mutex
}

type fileData struct {
	Values map[string]string `json:"values"`
}

// NewFileStore creates a FileStore rooted at configDir. The directory is
// created on first write.
func NewFileStore(configDir string) *FileStore {
	return &FileStore{configDir: configDir}
}

// Path returns the session file location.
func (fs *FileStore) Path() string {
	return filepath.Join(fs.configDir, FileName)
}

// load reads the file. A missing or corrupt file reads as empty.
func (fs *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(fs.Path())
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var fd fileData
	if err := json.Unmarshal(data, &fd); err != nil || fd.Values == nil {
		// Invalid JSON, start fresh
		return map[string]string{}, nil
	}
	return fd.Values, nil
}

func (fs *FileStore) save(values map[string]string) error {
	if err := os.MkdirAll(fs.configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(fileData{Values: values}, "", "  ")
	if err != nil {
		return err
	}

	// Atomic replace.
	tmp := fs.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, fs.Path())
}

func (fs *FileStore) Get(key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	values[key] = value
	return fs.save(values)
}

func (fs *FileStore) Remove(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return fs.save(values)
}

func (fs *FileStore) Close() error { return nil }
