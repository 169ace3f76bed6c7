// Package session persists the logged-in user id in the system keyring.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/99designs/keyring"

	"github.com/nhle/todolist/internal/model"
)

// Keys stored in the keyring.
const (
	KeyUserID     = "userId"
	KeyRESTAPIKey = "rest-api-key"
)

// ErrCorrupt is returned when the stored user id is not a decimal integer.
var ErrCorrupt = errors.New("corrupt session value")

// Store is a small key-value view over a keyring.
type Store struct {
	ring keyring.Keyring
}

// Open returns a Store backed by the first available system keyring,
// falling back to an encrypted file under cfg.FileDir.
func Open(cfg model.SessionConfig) (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: cfg.Service,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  cfg.FileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt(cfg.Service + "-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return New(ring), nil
}

// New wraps an already opened keyring.
func New(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Get returns the value stored under key. A missing key yields ("", false, nil).
func (s *Store) Get(key string) (string, bool, error) {
	item, err := s.ring.Get(key)
	if isMissing(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting %q: %w", key, err)
	}
	return string(item.Data), true, nil
}

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: key,
	})
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Removing an absent key is not an error.
func (s *Store) Delete(key string) error {
	if err := s.ring.Remove(key); err != nil && !isMissing(err) {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

// LoadUserID reads the persisted session. ok is false when no session is
// stored; a value that does not parse yields ErrCorrupt.
func (s *Store) LoadUserID() (id int64, ok bool, err error) {
	raw, ok, err := s.Get(KeyUserID)
	if err != nil || !ok {
		return 0, false, err
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", ErrCorrupt, raw)
	}
	return id, true, nil
}

// SaveUserID persists id as its decimal string.
func (s *Store) SaveUserID(id int64) error {
	return s.Set(KeyUserID, strconv.FormatInt(id, 10))
}

// ClearUserID removes the persisted session.
func (s *Store) ClearUserID() error {
	return s.Delete(KeyUserID)
}

func isMissing(err error) bool {
	return errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, fs.ErrNotExist)
}
