package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"edu-backend/internal/cache"
)

// Purpose scopes a code to the flow that requested it. A register code can
// never satisfy a login check and vice versa.
type Purpose string

const (
	PurposeRegister Purpose = "register"
	PurposeLogin    Purpose = "login"
)

const codeRange = 100000

// Store generates and validates short-lived numeric codes, keyed by
// (purpose, phone) in the cache. Codes live only in the cache; expiry is the
// cache's TTL.
type Store struct {
	kv  cache.KV
	ttl time.Duration
}

func NewStore(kv cache.KV, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{kv: kv, ttl: ttl}
}

// Generate produces a 5-digit zero-padded code from a cryptographically
// secure source.
func (s *Store) Generate() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(codeRange))
	return fmt.Sprintf("%05d", n.Int64())
}

// Issue stores the code for the (purpose, phone) pair with the configured
// TTL. A pending code for the same pair is overwritten.
func (s *Store) Issue(ctx context.Context, purpose Purpose, phone, code string) error {
	if err := s.kv.Set(ctx, key(purpose, phone), code, s.ttl); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	return nil
}

// Check reports whether the code matches the stored one without consuming
// it. Absent, expired and mismatched codes all come back false.
func (s *Store) Check(ctx context.Context, purpose Purpose, phone, code string) (bool, error) {
	saved, err := s.kv.Get(ctx, key(purpose, phone))
	if err == cache.ErrMiss {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read otp: %w", err)
	}
	return saved == code, nil
}

// Verify is Check with single-use semantics: a matching code is deleted
// before returning true, so it can never be replayed.
func (s *Store) Verify(ctx context.Context, purpose Purpose, phone, code string) (bool, error) {
	ok, err := s.Check(ctx, purpose, phone, code)
	if err != nil || !ok {
		return false, err
	}
	if err := s.kv.Del(ctx, key(purpose, phone)); err != nil {
		return false, fmt.Errorf("consume otp: %w", err)
	}
	return true, nil
}

// NormalizePhone strips everything but digits, so "+998 90-123-45-67" and
// "998901234567" address the same cache key.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func key(purpose Purpose, phone string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, NormalizePhone(phone))
}
