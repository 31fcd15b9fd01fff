// Package storage provides the local key-value slots notes are persisted to.
//
// A slot is a named string value, overwritten wholesale on every write.
package storage

import (
	"errors"
	"fmt"

	"quicknotes/internal/config"
)

// ErrClosed is returned by slots used after Close.
var ErrClosed = errors.New("storage: slot closed")

// Slot is a string-valued key-value store.
type Slot interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set overwrites the value for key.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	Close() error
}

// Open returns the slot backend selected by cfg.
func Open(cfg *config.Config) (Slot, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileSlot(cfg.DataDir)
	case config.BackendBadger:
		bc := DefaultBadgerConfig()
		bc.Path = cfg.BadgerDir()
		return OpenBadger(bc)
	case config.BackendMemory:
		return NewMemorySlot(), nil
	}
	return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
}
