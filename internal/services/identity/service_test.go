package identity_test

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fireplace/internal/domain"
	"fireplace/internal/services/identity"
	"fireplace/internal/store"
)

// scriptedStore wraps a MemoryStore and injects failures.
type scriptedStore struct {
	*store.MemoryStore
	getErr error
	setErr error
	sets   int
}

func (s *scriptedStore) Get(service, account string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.MemoryStore.Get(service, account)
}

func (s *scriptedStore) Set(service, account string, b []byte) error {
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Set(service, account, b)
}

func fixedSeed() []byte { return bytes.Repeat([]byte{0x42}, ed25519.SeedSize) }

func TestEnsureKeypair_CreatesOnceThenReuses(t *testing.T) {
	ms := store.NewMemoryStore()
	svc := identity.New(ms, identity.WithRand(bytes.NewReader(fixedSeed())))

	pub1, err := svc.EnsureKeypair()
	require.NoError(t, err)

	stored, err := ms.Get(domain.DefaultService, identity.KeyAccount)
	require.NoError(t, err)
	assert.Equal(t, fixedSeed(), stored)

	// The rand source is exhausted: a second generation attempt would fail.
	pub2, err := svc.EnsureKeypair()
	require.NoError(t, err)
	assert.Equal(t, pub1, pub2)

	want := ed25519.NewKeyFromSeed(fixedSeed()).Public().(ed25519.PublicKey)
	assert.Equal(t, []byte(want), pub1.Slice())
}

func TestEnsureKeypair_ReadsExistingSeed(t *testing.T) {
	ms := store.NewMemoryStore()
	require.NoError(t, ms.Set("svc", identity.KeyAccount, fixedSeed()))

	svc := identity.New(ms, identity.WithService("svc"))
	pub, err := svc.EnsureKeypair()
	require.NoError(t, err)

	want := ed25519.NewKeyFromSeed(fixedSeed()).Public().(ed25519.PublicKey)
	assert.Equal(t, []byte(want), pub.Slice())
}

func TestEnsureKeypair_WrongLength_InvalidData(t *testing.T) {
	for _, n := range []int{0, 31, 33, 64} {
		t.Run(fmt.Sprintf("len=%d", n), func(t *testing.T) {
			ms := store.NewMemoryStore()
			bad := bytes.Repeat([]byte{7}, n)
			require.NoError(t, ms.Set(domain.DefaultService, identity.KeyAccount, bad))

			_, err := identity.New(ms).EnsureKeypair()
			require.ErrorIs(t, err, domain.ErrInvalidData)

			// Corruption is reported, never repaired.
			stored, err := ms.Get(domain.DefaultService, identity.KeyAccount)
			require.NoError(t, err)
			assert.Equal(t, bad, stored)
		})
	}
}

func TestEnsureKeypair_AccessDeniedOnRead(t *testing.T) {
	ss := &scriptedStore{MemoryStore: store.NewMemoryStore(), getErr: fmt.Errorf("%w: prompt declined", domain.ErrAccessDenied)}

	_, err := identity.New(ss).EnsureKeypair()
	require.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.Zero(t, ss.sets, "must not generate a key when the read was refused")
}

func TestEnsureKeypair_AccessDeniedOnWrite(t *testing.T) {
	ss := &scriptedStore{MemoryStore: store.NewMemoryStore(), setErr: domain.ErrAccessDenied}

	_, err := identity.New(ss).EnsureKeypair()
	require.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestEnsureKeypair_UnsupportedPlatform(t *testing.T) {
	_, err := identity.New(store.Unsupported{}).PublicKey()
	require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

func TestEnsureKeypair_RandFailure(t *testing.T) {
	svc := identity.New(store.NewMemoryStore(), identity.WithRand(bytes.NewReader(nil)))
	_, err := svc.EnsureKeypair()
	require.Error(t, err)
}

func TestEnsureKeypair_ConcurrentFirstUse(t *testing.T) {
	svc := identity.New(store.NewMemoryStore())

	const n = 8
	pubs := make([]domain.Ed25519Public, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pub, err := svc.EnsureKeypair()
			assert.NoError(t, err)
			pubs[i] = pub
		}(i)
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		assert.Equal(t, pubs[0], pubs[i])
	}
}

func TestPublicKey_Base64URLNoPadding(t *testing.T) {
	svc := identity.New(store.NewMemoryStore())
	pk, err := svc.PublicKey()
	require.NoError(t, err)

	assert.Len(t, pk, 43)
	assert.NotContains(t, pk, "=")
	assert.NotContains(t, pk, "+")
	assert.NotContains(t, pk, "/")

	raw, err := base64.RawURLEncoding.DecodeString(pk)
	require.NoError(t, err)
	assert.Len(t, raw, ed25519.PublicKeySize)
}

func TestDeviceID_IsHashOfPublicKey(t *testing.T) {
	svc := identity.New(store.NewMemoryStore())

	pk, err := svc.PublicKey()
	require.NoError(t, err)
	raw, err := base64.RawURLEncoding.DecodeString(pk)
	require.NoError(t, err)
	sum := sha256.Sum256(raw)

	id, err := svc.DeviceID()
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(sum[:]), id.String())

	again, err := svc.DeviceID()
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestDeviceID_DiffersAcrossDevices(t *testing.T) {
	a, err := identity.New(store.NewMemoryStore()).DeviceID()
	require.NoError(t, err)
	b, err := identity.New(store.NewMemoryStore()).DeviceID()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSign_VerifiesAgainstPublicKey(t *testing.T) {
	svc := identity.New(store.NewMemoryStore())

	sig, err := svc.Sign([]byte("hello"))
	require.NoError(t, err)
	assert.NotContains(t, sig, "=")

	pk, err := svc.PublicKey()
	require.NoError(t, err)
	pub, err := base64.RawURLEncoding.DecodeString(pk)
	require.NoError(t, err)
	rawSig, err := base64.RawURLEncoding.DecodeString(sig)
	require.NoError(t, err)

	assert.True(t, ed25519.Verify(pub, []byte("hello"), rawSig))
	assert.False(t, ed25519.Verify(pub, []byte("hello!"), rawSig))
}

func TestSign_SignsExactBytes(t *testing.T) {
	svc := identity.New(store.NewMemoryStore(), identity.WithRand(bytes.NewReader(fixedSeed())))
	payload := []byte("v2|dev|client|ui|operator|a,b|1700000000000|tok|nonce")

	sig, err := svc.Sign(payload)
	require.NoError(t, err)

	want := ed25519.Sign(ed25519.NewKeyFromSeed(fixedSeed()), payload)
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(want), sig)
}

func TestErrors_NeverCarryKeyMaterial(t *testing.T) {
	ms := store.NewMemoryStore()
	bad := append(fixedSeed(), 0x01)
	require.NoError(t, ms.Set(domain.DefaultService, identity.KeyAccount, bad))

	_, err := identity.New(ms).Sign([]byte("x"))
	require.Error(t, err)
	msg := err.Error()
	assert.NotContains(t, msg, hex.EncodeToString(fixedSeed()))
	assert.NotContains(t, msg, base64.StdEncoding.EncodeToString(fixedSeed()))
	assert.NotContains(t, msg, string(fixedSeed()))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
