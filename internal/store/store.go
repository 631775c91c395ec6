// Package store persists tenants and system variables in a single JSON data
// file behind the Repository interface.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jorge-barreto/casedoc/internal/template"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

// Data is the on-disk layout of the data file.
type Data struct {
	SystemVariables []template.Variable `json:"systemVariables"`
	Tenants         []template.Tenant   `json:"tenants"`
}

// Repository stores tenants by id. Returned tenants are copies; changes are
// persisted through UpdateTenant.
type Repository interface {
	Tenants() []template.Tenant
	Tenant(id string) (template.Tenant, error)
	AddTenant(t template.Tenant) error
	UpdateTenant(t template.Tenant) error
	DeleteTenant(id string) error
}

// FileStore is a Repository backed by one JSON file. Every write rewrites
// the whole file.
type FileStore struct {
	path string

	mu   sync.Mutex
	data Data
}

var _ Repository = (*FileStore)(nil)

// Open loads the data file at path. A missing file yields an empty store
// that is created on the first write.
func Open(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading data file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parsing data file %s: %w", path, err)
	}
	return s, nil
}

// Path returns the data file location.
func (s *FileStore) Path() string { return s.path }

// SystemVariables returns the variables shared by all tenants.
func (s *FileStore) SystemVariables() []template.Variable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]template.Variable(nil), s.data.SystemVariables...)
}

// SetSystemVariables replaces the shared variables and saves.
func (s *FileStore) SetSystemVariables(vars []template.Variable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.SystemVariables = append([]template.Variable(nil), vars...)
	return s.save()
}

func (s *FileStore) Tenants() []template.Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]template.Tenant, 0, len(s.data.Tenants))
	for i := range s.data.Tenants {
		out = append(out, clone(s.data.Tenants[i]))
	}
	return out
}

func (s *FileStore) Tenant(id string) (template.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return template.Tenant{}, fmt.Errorf("tenant %q: %w", id, ErrNotFound)
	}
	return clone(s.data.Tenants[i]), nil
}

func (s *FileStore) AddTenant(t template.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		return fmt.Errorf("tenant id is required")
	}
	if s.index(t.ID) >= 0 {
		return fmt.Errorf("tenant %q: %w", t.ID, ErrExists)
	}
	s.data.Tenants = append(s.data.Tenants, clone(t))
	return s.save()
}

func (s *FileStore) UpdateTenant(t template.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(t.ID)
	if i < 0 {
		return fmt.Errorf("tenant %q: %w", t.ID, ErrNotFound)
	}
	s.data.Tenants[i] = clone(t)
	return s.save()
}

func (s *FileStore) DeleteTenant(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("tenant %q: %w", id, ErrNotFound)
	}
	s.data.Tenants = append(s.data.Tenants[:i], s.data.Tenants[i+1:]...)
	return s.save()
}

func (s *FileStore) index(id string) int {
	for i := range s.data.Tenants {
		if s.data.Tenants[i].ID == id {
			return i
		}
	}
	return -1
}

// save must be called with mu held.
func (s *FileStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, append(raw, '\n'), 0644); err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}
	return nil
}

// clone deep-copies a tenant through its JSON form so callers never share
// slices or maps with the store.
func clone(t template.Tenant) template.Tenant {
	raw, err := json.Marshal(t)
	if err != nil {
		panic(fmt.Sprintf("store: marshal tenant %q: %v", t.ID, err))
	}
	var out template.Tenant
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("store: unmarshal tenant %q: %v", t.ID, err))
	}
	return out
}

// writeFileAtomic writes through a temporary sibling file and renames it
// into place after fsync.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()
	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
