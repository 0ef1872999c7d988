package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	// storeFilePermissions is the permission mode for connector store files.
	storeFilePermissions = 0o640

	// storeDirPermissions is the permission mode for connector store directories.
	storeDirPermissions = 0o750
)

// ErrCorruptStore indicates the connector store file is malformed JSON.
var ErrCorruptStore = errors.New("connector store file is corrupted")

// ConnectorStore persists the last-used connector id so a future start can
// silently reconnect. It is the Go stand-in for browser local storage.
type ConnectorStore interface {
	Load() (string, error)
	Save(connectorID string) error
	Clear() error
}

// storedConnector is the on-disk shape.
type storedConnector struct {
	Connector string    `json:"connector"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Compile-time interface checks
var (
	_ ConnectorStore = (*FileConnectorStore)(nil)
	_ ConnectorStore = (*MemoryConnectorStore)(nil)
)

// FileConnectorStore implements ConnectorStore using the filesystem.
type FileConnectorStore struct {
	path string
}

// NewFileConnectorStore creates a file-backed connector store.
func NewFileConnectorStore(path string) *FileConnectorStore {
	return &FileConnectorStore{path: path}
}

// Load reads the persisted connector id. A missing file loads as "".
func (s *FileConnectorStore) Load() (string, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return "", nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("reading connector store: %w", err)
	}

	var stored storedConnector
	if err := json.Unmarshal(data, &stored); err != nil {
		// A corrupt store is not worth failing a connect over; move it
		// aside and start fresh.
		corruptPath := fmt.Sprintf("%s.corrupt.%d", s.path, time.Now().UTC().UnixNano())
		if renameErr := os.Rename(s.path, corruptPath); renameErr != nil {
			return "", fmt.Errorf("%w: %w (also failed to move file: %w)", ErrCorruptStore, err, renameErr)
		}
		return "", fmt.Errorf("%w: %w (moved to %s)", ErrCorruptStore, err, corruptPath)
	}

	return stored.Connector, nil
}

// Save persists the connector id.
func (s *FileConnectorStore) Save(connectorID string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, storeDirPermissions); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	data, err := json.MarshalIndent(storedConnector{
		Connector: connectorID,
		UpdatedAt: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling connector store: %w", err)
	}

	if err := os.WriteFile(s.path, data, storeFilePermissions); err != nil {
		return fmt.Errorf("writing connector store: %w", err)
	}

	return nil
}

// Clear removes the persisted connector choice.
func (s *FileConnectorStore) Clear() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(s.path); err != nil {
		return fmt.Errorf("removing connector store: %w", err)
	}

	return nil
}

// MemoryConnectorStore is an in-memory ConnectorStore for tests and
// ephemeral sessions.
type MemoryConnectorStore struct {
	mu        sync.Mutex
	connector string
}

// NewMemoryConnectorStore creates an in-memory connector store.
func NewMemoryConnectorStore() *MemoryConnectorStore {
	return &MemoryConnectorStore{}
}

// Load returns the stored connector id.
func (s *MemoryConnectorStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connector, nil
}

// Save stores the connector id.
func (s *MemoryConnectorStore) Save(connectorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connector = connectorID
	return nil
}

// Clear removes the stored connector id.
func (s *MemoryConnectorStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connector = ""
	return nil
}
