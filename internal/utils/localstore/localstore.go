// Package localstore is the device-local key/value persistence used for the
// session marker and other small client state. Values are strings, keyed by
// name, and survive process restarts when backed by a file.
package localstore

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

var ErrCorrupted = errors.New("local store is corrupted or sealed with another key")

type (
	Store interface {
		Get(key string) (string, bool)
		Set(key, value string) error
		Remove(keys ...string) error
		Clear() error
	}

	fileStore struct {
		mu   sync.Mutex
		path string
		aead cipher.AEAD
		data map[string]string
	}

	memoryStore struct {
		mu   sync.RWMutex
		data map[string]string
	}
)

// Open loads the store at path, creating it on first write. A non-empty
// secret seals the file with XChaCha20-Poly1305.
func Open(path string, secret string) (Store, error) {
	s := &fileStore{path: path, data: make(map[string]string)}

	if secret != "" {
		aead, err := newAEAD(secret)
		if err != nil {
			return nil, err
		}
		s.aead = aead
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read local store: %w", err)
	}
	if len(raw) == 0 {
		return s, nil
	}

	plain, err := s.open(raw)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(plain, &s.data); err != nil {
		return nil, ErrCorrupted
	}
	return s, nil
}

func newAEAD(secret string) (cipher.AEAD, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("platecheck local store"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}
	return chacha20poly1305.NewX(key)
}

func (s *fileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *fileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flush()
}

func (s *fileStore) Remove(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for _, k := range keys {
		if _, ok := s.data[k]; ok {
			delete(s.data, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.flush()
}

func (s *fileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]string)
	return s.flush()
}

// flush writes the whole map through a temp file and rename. Callers hold mu.
func (s *fileStore) flush() error {
	plain, err := json.Marshal(s.data)
	if err != nil {
		return err
	}
	out, err := s.seal(plain)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create local store dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o600); err != nil {
		return fmt.Errorf("write local store: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *fileStore) seal(plain []byte) ([]byte, error) {
	if s.aead == nil {
		return plain, nil
	}
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plain)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plain, nil), nil
}

func (s *fileStore) open(raw []byte) ([]byte, error) {
	if s.aead == nil {
		return raw, nil
	}
	if len(raw) < s.aead.NonceSize() {
		return nil, ErrCorrupted
	}
	nonce, sealed := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrCorrupted
	}
	return plain, nil
}

// NewMemory returns a store that lives as long as the process, the
// equivalent of per-tab session storage.
func NewMemory() Store {
	return &memoryStore{data: make(map[string]string)}
}

func (m *memoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryStore) Remove(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string)
	return nil
}
