package developers

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	keyPrefix    = "itj_"
	keyRandomLen = 32
	keyAlphabet  = "abcdefghijklmnopqrstuvwxyz234567" // 32 symbols, so a byte maps without bias
)

// MaskKey keeps the first 11 and last 4 characters.
func MaskKey(key string) string {
	if len(key) <= 15 {
		return key
	}
	return key[:11] + "..." + key[len(key)-4:]
}

func NormalizeEnv(env string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", EnvDevelopment, "development":
		return EnvDevelopment, nil
	case EnvProduction, "production":
		return EnvProduction, nil
	case EnvTest:
		return EnvTest, nil
	}
	return "", ErrInvalidEnv
}

func generateKey(env string) (string, error) {
	b := make([]byte, keyRandomLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = keyAlphabet[int(b[i])%len(keyAlphabet)]
	}
	return keyPrefix + env + "_" + string(b), nil
}

// KeyService issues and checks API keys. Keys live in memory only.
type KeyService struct {
	mu   sync.RWMutex
	keys []APIKey
	now  func() time.Time
}

func NewKeyService(seed []APIKey) *KeyService {
	return &KeyService{keys: append([]APIKey(nil), seed...), now: time.Now}
}

// List returns every key, masked unless reveal is set.
func (s *KeyService) List(ctx context.Context, reveal bool) []APIKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]APIKey, len(s.keys))
	copy(out, s.keys)
	if !reveal {
		for i := range out {
			out[i].Key = MaskKey(out[i].Key)
		}
	}
	return out
}

// Create issues an active key; the returned value carries the full key.
func (s *KeyService) Create(ctx context.Context, name, env string) (*APIKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	env, err := NormalizeEnv(env)
	if err != nil {
		return nil, err
	}
	key, err := generateKey(env)
	if err != nil {
		return nil, err
	}

	k := APIKey{
		ID:          uuid.NewString(),
		Name:        name,
		Key:         key,
		Created:     s.now().UTC(),
		Status:      StatusActive,
		Environment: env,
	}
	s.mu.Lock()
	s.keys = append(s.keys, k)
	s.mu.Unlock()
	return &k, nil
}

// Regenerate replaces the secret of an existing key, keeping its environment.
func (s *KeyService) Regenerate(ctx context.Context, id string) (*APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.keys {
		if s.keys[i].ID != id {
			continue
		}
		key, err := generateKey(s.keys[i].Environment)
		if err != nil {
			return nil, err
		}
		s.keys[i].Key = key
		s.keys[i].Created = s.now().UTC()
		s.keys[i].LastUsed = nil
		k := s.keys[i]
		return &k, nil
	}
	return nil, ErrKeyNotFound
}

func (s *KeyService) Revoke(ctx context.Context, id string) (*APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.keys {
		if s.keys[i].ID == id {
			s.keys[i].Status = StatusInactive
			k := s.keys[i]
			k.Key = MaskKey(k.Key)
			return &k, nil
		}
	}
	return nil, ErrKeyNotFound
}

// Authenticate resolves an active key and stamps its last use.
func (s *KeyService) Authenticate(ctx context.Context, key string) (*APIKey, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrUnauthorized
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.keys {
		if subtle.ConstantTimeCompare([]byte(s.keys[i].Key), []byte(key)) != 1 {
			continue
		}
		if s.keys[i].Status != StatusActive {
			return nil, ErrUnauthorized
		}
		now := s.now().UTC()
		s.keys[i].LastUsed = &now
		k := s.keys[i]
		return &k, nil
	}
	return nil, ErrUnauthorized
}
