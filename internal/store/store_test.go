package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"fireplace/internal/domain"
	"fireplace/internal/store"
)

const svc = "com.example.fireplace-test"

func newFileStore(t *testing.T) *store.FileStore {
	t.Helper()
	return store.NewFileStore(filepath.Join(t.TempDir(), "secrets.enc"), "correct horse", store.WithScryptCost(1<<10, 8, 1))
}

// exerciseContract checks the behaviour every domain.SecretStore must share.
func exerciseContract(t *testing.T, s domain.SecretStore) {
	t.Helper()

	_, err := s.Get(svc, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Set(svc, "a", []byte{0x00, 0xff, 0x10}))
	got, err := s.Get(svc, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0x10}, got)

	require.NoError(t, s.Set(svc, "a", []byte("second")))
	got, err = s.Get(svc, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)

	_, err = s.Get("other-service", "a")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Delete(svc, "a"))
	_, err = s.Get(svc, "a")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, s.Delete(svc, "a"), domain.ErrNotFound)
}

func TestMemoryStore_Contract(t *testing.T) {
	exerciseContract(t, store.NewMemoryStore())
}

func TestFileStore_Contract(t *testing.T) {
	exerciseContract(t, newFileStore(t))
}

func TestKeyringStore_Contract(t *testing.T) {
	keyring.MockInit()
	exerciseContract(t, store.NewKeyringStore())
}

func TestMemoryStore_CopiesBuffers(t *testing.T) {
	s := store.NewMemoryStore()
	in := []byte("abc")
	require.NoError(t, s.Set(svc, "k", in))
	in[0] = 'X'

	got, err := s.Get(svc, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'Y'
	again, _ := s.Get(svc, "k")
	assert.Equal(t, []byte("abc"), again)
}

func TestListers_SortedAndScopedToService(t *testing.T) {
	for name, s := range map[string]interface {
		domain.SecretStore
		domain.SecretLister
	}{
		"memory": store.NewMemoryStore(),
		"file":   newFileStore(t),
	} {
		t.Run(name, func(t *testing.T) {
			empty, err := s.List(svc)
			require.NoError(t, err)
			assert.Empty(t, empty)

			require.NoError(t, s.Set(svc, "b", []byte("2")))
			require.NoError(t, s.Set(svc, "a", []byte("1")))
			require.NoError(t, s.Set("elsewhere", "c", []byte("3")))

			accounts, err := s.List(svc)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, accounts)
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "secrets.enc")
	first := store.NewFileStore(path, "pw", store.WithScryptCost(1<<10, 8, 1))
	require.NoError(t, first.Set(svc, "k", []byte("v")))

	second := store.NewFileStore(path, "pw")
	got, err := second.Get(svc, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"k"`)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestFileStore_WrongPassphrase_AccessDenied(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.enc")
	require.NoError(t, store.NewFileStore(path, "right", store.WithScryptCost(1<<10, 8, 1)).Set(svc, "k", []byte("v")))

	_, err := store.NewFileStore(path, "wrong").Get(svc, "k")
	require.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestFileStore_NoPassphrase_AccessDenied(t *testing.T) {
	s := store.NewFileStore(filepath.Join(t.TempDir(), "secrets.enc"), "")
	_, err := s.Get(svc, "k")
	require.ErrorIs(t, err, domain.ErrAccessDenied)
	require.ErrorIs(t, s.Set(svc, "k", []byte("v")), domain.ErrAccessDenied)
}

func TestFileStore_GarbageFile_InvalidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.enc")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o600))

	s := store.NewFileStore(path, "pw")
	_, err := s.Get(svc, "k")
	require.ErrorIs(t, err, domain.ErrInvalidData)

	// A corrupted file is never silently replaced.
	require.ErrorIs(t, s.Set(svc, "k", []byte("v")), domain.ErrInvalidData)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not json at all", string(raw))
}

func TestKeyringStore_ErrorMapping(t *testing.T) {
	t.Cleanup(keyring.MockInit)

	keyring.MockInitWithError(errors.New("user canceled the operation"))
	s := store.NewKeyringStore()
	_, err := s.Get(svc, "k")
	require.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.Contains(t, err.Error(), "user canceled")
	require.ErrorIs(t, s.Set(svc, "k", []byte("v")), domain.ErrAccessDenied)
	require.ErrorIs(t, s.Delete(svc, "k"), domain.ErrAccessDenied)

	keyring.MockInitWithError(keyring.ErrUnsupportedPlatform)
	_, err = s.Get(svc, "k")
	require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

func TestKeyringStore_NonBase64Entry_InvalidData(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, keyring.Set(svc, "raw", "%%% not base64 %%%"))

	_, err := store.NewKeyringStore().Get(svc, "raw")
	require.ErrorIs(t, err, domain.ErrInvalidData)
}

func TestUnsupported_FailsEverything(t *testing.T) {
	var s store.Unsupported
	_, err := s.Get(svc, "k")
	require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
	require.ErrorIs(t, s.Set(svc, "k", nil), domain.ErrUnsupportedPlatform)
	require.ErrorIs(t, s.Delete(svc, "k"), domain.ErrUnsupportedPlatform)
	_, err = s.List(svc)
	require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

func TestNewPlatform_MatchesBuildTarget(t *testing.T) {
	s := store.NewPlatform()
	if store.PlatformSupported {
		assert.IsType(t, &store.KeyringStore{}, s)
	} else {
		assert.IsType(t, store.Unsupported{}, s)
	}
}
