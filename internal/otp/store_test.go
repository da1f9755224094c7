package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu-backend/internal/cache"
)

func newTestStore() *Store {
	return NewStore(cache.NewMemory(), 5*time.Minute)
}

func TestGenerateFormat(t *testing.T) {
	s := newTestStore()

	for i := 0; i < 200; i++ {
		code := s.Generate()
		require.Len(t, code, 5)
		for _, c := range code {
			require.True(t, c >= '0' && c <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestIssueThenCheck(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.Issue(ctx, PurposeRegister, "998901234567", "00042"))

	ok, err := s.Check(ctx, PurposeRegister, "998901234567", "00042")
	require.NoError(t, err)
	assert.True(t, ok)

	// Check does not consume: a second check still succeeds.
	ok, err = s.Check(ctx, PurposeRegister, "998901234567", "00042")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyIsSingleUse(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.Issue(ctx, PurposeLogin, "998901234567", "12345"))

	ok, err := s.Verify(ctx, PurposeLogin, "998901234567", "12345")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Verify(ctx, PurposeLogin, "998901234567", "12345")
	require.NoError(t, err)
	assert.False(t, ok, "verified code must not be reusable")
}

func TestMismatchLeavesCodeIntact(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.Issue(ctx, PurposeRegister, "998901234567", "54321"))

	ok, err := s.Verify(ctx, PurposeRegister, "998901234567", "00000")
	require.NoError(t, err)
	assert.False(t, ok)

	// The stored code survives a failed verify.
	ok, err = s.Verify(ctx, PurposeRegister, "998901234567", "54321")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnknownPairFails(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	ok, err := s.Check(ctx, PurposeRegister, "998900000000", "11111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Verify(ctx, PurposeRegister, "998900000000", "11111")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPurposesAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.Issue(ctx, PurposeRegister, "998901234567", "22222"))

	ok, err := s.Check(ctx, PurposeLogin, "998901234567", "22222")
	require.NoError(t, err)
	assert.False(t, ok, "register code must not satisfy login")

	require.NoError(t, s.Issue(ctx, PurposeLogin, "998907654321", "33333"))
	ok, err = s.Verify(ctx, PurposeRegister, "998907654321", "33333")
	require.NoError(t, err)
	assert.False(t, ok, "login code must not satisfy register")
}

func TestReissueOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.Issue(ctx, PurposeLogin, "998901234567", "11111"))
	require.NoError(t, s.Issue(ctx, PurposeLogin, "998901234567", "99999"))

	ok, err := s.Check(ctx, PurposeLogin, "998901234567", "11111")
	require.NoError(t, err)
	assert.False(t, ok, "superseded code must be dead")

	ok, err = s.Check(ctx, PurposeLogin, "998901234567", "99999")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestExpiredCodeFails(t *testing.T) {
	ctx := context.Background()
	s := NewStore(cache.NewMemory(), time.Millisecond)

	require.NoError(t, s.Issue(ctx, PurposeLogin, "998901234567", "77777"))
	time.Sleep(5 * time.Millisecond)

	ok, err := s.Verify(ctx, PurposeLogin, "998901234567", "77777")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "998901234567", NormalizePhone("+998 90-123-45-67"))
	assert.Equal(t, "998901234567", NormalizePhone("998901234567"))
	assert.Equal(t, key(PurposeRegister, "+998 90-123-45-67"), key(PurposeRegister, "998901234567"))
}

func TestFormattedPhoneResolvesSameKey(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.Issue(ctx, PurposeRegister, "+998 90-123-45-67", "00007"))

	ok, err := s.Verify(ctx, PurposeRegister, "998901234567", "00007")
	require.NoError(t, err)
	assert.True(t, ok)
}
