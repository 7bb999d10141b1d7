package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store backed by a JSON document. Every Set rewrites the file
// through a temporary file and a rename.
type File struct {
	mu    sync.Mutex
	path  string
	slots map[Slot]uint8
}

// OpenFile loads path, or starts empty when it does not exist yet.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, slots: map[Slot]uint8{}}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("read store: %w", err)
	}
	if len(data) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, &f.slots); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", path, err)
	}
	return f, nil
}

// Path returns the backing file.
func (f *File) Path() string { return f.path }

func (f *File) Get(slot Slot) (uint8, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.slots[slot]
	if !ok {
		return 0, ErrNotFound
	}
	return v, nil
}

func (f *File) Set(slot Slot, v uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.slots[slot]
	f.slots[slot] = v
	if err := f.flush(); err != nil {
		if had {
			f.slots[slot] = prev
		} else {
			delete(f.slots, slot)
		}
		return err
	}
	return nil
}

func (f *File) flush() error {
	data, err := json.MarshalIndent(f.slots, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
