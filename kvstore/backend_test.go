package kvstore_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/go-sso-client/kvstore"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var testEncryptionKey = []byte("0123456789abcdef0123456789abcdef")

type backendFactory func(t *testing.T) kvstore.Backend

func backends() map[string]backendFactory {
	return map[string]backendFactory{
		"memory": func(t *testing.T) kvstore.Backend {
			return kvstore.NewInMemory()
		},
		"file": func(t *testing.T) kvstore.Backend {
			b, err := kvstore.NewFile(afero.NewMemMapFs(), "/home/test/.sso-client/store.json")
			require.NoError(t, err)
			return b
		},
		"sqlite": func(t *testing.T) kvstore.Backend {
			b, err := kvstore.NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
			require.NoError(t, err)
			return b
		},
		"redis": func(t *testing.T) kvstore.Backend {
			mr := miniredis.RunT(t)
			b, err := kvstore.NewRedis("redis://"+mr.Addr(), "test:")
			require.NoError(t, err)
			return b
		},
		"encrypted": func(t *testing.T) kvstore.Backend {
			b, err := kvstore.NewEncrypted(kvstore.NewInMemory(), testEncryptionKey)
			require.NoError(t, err)
			return b
		},
	}
}

func TestBackendContract(t *testing.T) {
	for name, factory := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			b := factory(t)
			defer b.Close()

			_, ok, err := b.Get(ctx, "missing")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, b.Set(ctx, "app-a", "1"))
			require.NoError(t, b.Set(ctx, "app-b", "2"))
			require.NoError(t, b.Set(ctx, "other-a", "3"))
			require.NoError(t, b.Set(ctx, "app-a", "one"))

			v, ok, err := b.Get(ctx, "app-a")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "one", v)

			keys, err := b.Keys(ctx, "app-")
			require.NoError(t, err)
			require.Equal(t, []string{"app-a", "app-b"}, keys)

			all, err := b.Keys(ctx, "")
			require.NoError(t, err)
			require.Len(t, all, 3)

			require.NoError(t, b.Delete(ctx, "app-b"))
			require.NoError(t, b.Delete(ctx, "app-b"))
			_, ok, err = b.Get(ctx, "app-b")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, b.Flush(ctx))
			all, err = b.Keys(ctx, "")
			require.NoError(t, err)
			require.Empty(t, all)
		})
	}
}

func TestSQLiteKeysMatchesPrefixLiterally(t *testing.T) {
	ctx := context.Background()
	b, err := kvstore.NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Set(ctx, "a_b-x", "1"))
	require.NoError(t, b.Set(ctx, "aXb-x", "2"))

	keys, err := b.Keys(ctx, "a_b-")
	require.NoError(t, err)
	require.Equal(t, []string{"a_b-x"}, keys)
}

func TestRedisFlushKeepsForeignKeys(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("unrelated", "keep"))

	b, err := kvstore.NewRedis("redis://"+mr.Addr(), "sso:")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Set(ctx, "app-tokenInfo", "{}"))
	require.True(t, mr.Exists("sso:app-tokenInfo"))

	require.NoError(t, b.Flush(ctx))
	require.False(t, mr.Exists("sso:app-tokenInfo"))
	require.True(t, mr.Exists("unrelated"))
}

func TestNewRedisInvalidURL(t *testing.T) {
	_, err := kvstore.NewRedis("not a url", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid redis URL")
}

func TestFileBackendPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	path := "/home/test/.sso-client/store.json"

	first, err := kvstore.NewFile(fs, path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "app-login_redirect_uri", "http://localhost:3000/"))

	info, err := fs.Stat(path)
	require.NoError(t, err)
	require.Equal(t, "-rw-------", info.Mode().Perm().String())

	second, err := kvstore.NewFile(fs, path)
	require.NoError(t, err)
	v, ok, err := second.Get(ctx, "app-login_redirect_uri")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "http://localhost:3000/", v)
}

func TestNewFileRequiresPath(t *testing.T) {
	_, err := kvstore.NewFile(afero.NewMemMapFs(), " ")
	require.Error(t, err)
}

func TestEncryptedNeverStoresPlaintext(t *testing.T) {
	ctx := context.Background()
	inner := kvstore.NewInMemory()
	b, err := kvstore.NewEncrypted(inner, testEncryptionKey)
	require.NoError(t, err)

	secret := `{"access_token":"very-secret"}`
	require.NoError(t, b.Set(ctx, "app-tokenInfo", secret))

	raw, ok, err := inner.Get(ctx, "app-tokenInfo")
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, strings.Contains(raw, "very-secret"))

	t.Run("value moved under another key fails to open", func(t *testing.T) {
		require.NoError(t, inner.Set(ctx, "app-SSO-tokenInfo", raw))
		_, _, err := b.Get(ctx, "app-SSO-tokenInfo")
		require.Error(t, err)
	})

	t.Run("wrong key size", func(t *testing.T) {
		_, err := kvstore.NewEncrypted(inner, []byte("short"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "key must be 32 bytes")
	})
}
