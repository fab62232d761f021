package economy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileRepository stores the record as a JSON file.
// Writes go to a temp file that is renamed over the target.
type FileRepository struct {
	path string
}

// NewFileRepository creates a repository backed by path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Get reads the record. A missing file yields ErrNotFound.
func (r *FileRepository) Get() (Record, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("reading economy file: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parsing economy file: %w", err)
	}
	return rec, nil
}

// Put writes the record.
func (r *FileRepository) Put(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling economy: %w", err)
	}
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating economy directory: %w", err)
		}
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing economy file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replacing economy file: %w", err)
	}
	return nil
}

// Path returns the backing file path.
func (r *FileRepository) Path() string { return r.path }

// MemoryRepository keeps the record in memory.
type MemoryRepository struct {
	mu   sync.Mutex
	rec  Record
	set  bool
	puts int
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// NewMemoryRepositoryWith creates a repository holding rec.
func NewMemoryRepositoryWith(rec Record) *MemoryRepository {
	return &MemoryRepository{rec: rec, set: true}
}

// Get returns the stored record or ErrNotFound.
func (m *MemoryRepository) Get() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return Record{}, ErrNotFound
	}
	return m.rec, nil
}

// Put stores the record.
func (m *MemoryRepository) Put(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = rec
	m.set = true
	m.puts++
	return nil
}

// Puts returns how many writes the repository has seen.
func (m *MemoryRepository) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}
