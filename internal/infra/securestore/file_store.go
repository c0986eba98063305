// Package securestore implements the opaque secure session store as an
// encrypted-at-rest JSON file.
package securestore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"moducare/config"
	"moducare/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

// fileStore keeps all values in one AEAD-sealed file. The file is rewritten
// atomically on every mutation; values never touch disk in the clear.
type fileStore struct {
	mu     sync.Mutex
	path   string
	key    []byte
	logger *slog.Logger
}

// NewFileStore creates the store from configuration. When no key is
// configured an ephemeral one is generated, which means the session will not
// survive a process restart.
func NewFileStore(cfg *config.Config, logger *slog.Logger) (service.SecureStore, error) {
	var (
		path string
		key  []byte
	)

	if cfg.SecureStore != nil && cfg.SecureStore.Key != "" {
		decoded, err := hex.DecodeString(cfg.SecureStore.Key)
		if err != nil {
			return nil, errors.Wrap(err, "decode secure store key")
		}
		if len(decoded) != chacha20poly1305.KeySize {
			return nil, errors.Errorf("secure store key must be %d bytes, got %d", chacha20poly1305.KeySize, len(decoded))
		}
		key = decoded
	} else {
		key = make([]byte, chacha20poly1305.KeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, errors.Wrap(err, "generate ephemeral key")
		}
		logger.Warn("secure store key not configured, using ephemeral key; session will not survive restart")
	}

	if cfg.SecureStore != nil && cfg.SecureStore.Path != "" {
		path = cfg.SecureStore.Path
	} else {
		path = filepath.Join(os.TempDir(), "moducare-store.bin")
	}

	return &fileStore{
		path:   path,
		key:    key,
		logger: logger,
	}, nil
}

// Get unmarshals the value stored under key into out.
func (s *fileStore) Get(_ context.Context, key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return false, err
	}

	raw, ok := values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, errors.Wrap(err, "unmarshal stored value")
	}

	return true, nil
}

// Set stores value under key, overwriting any previous value.
func (s *fileStore) Set(_ context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "marshal value")
	}
	values[key] = raw

	return s.save(values)
}

// Remove deletes the key. Removing an absent key is not an error.
func (s *fileStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)

	return s.save(values)
}

// load reads and opens the sealed file. An absent file is an empty store.
func (s *fileStore) load() (map[string]json.RawMessage, error) {
	sealed, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read store file")
	}

	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("store file truncated")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open store file")
	}

	values := make(map[string]json.RawMessage)
	if err := json.Unmarshal(plaintext, &values); err != nil {
		return nil, errors.Wrap(err, "unmarshal store file")
	}

	return values, nil
}

// save seals the values with a fresh nonce and replaces the file atomically.
func (s *fileStore) save(values map[string]json.RawMessage) error {
	plaintext, err := json.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "marshal store")
	}

	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		return errors.WithStack(err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return errors.Wrap(err, "generate nonce")
	}
	sealed := append(nonce, aead.Seal(nil, nonce, plaintext, nil)...)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create store directory")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return errors.Wrap(err, "write store file")
	}

	return errors.Wrap(os.Rename(tmp, s.path), "replace store file")
}
