package kvstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/go-sso-client/internal/config"
	"github.com/jrsteele09/go-sso-client/kvstore"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		env     map[string]string
		fs      afero.Fs
		check   func(t *testing.T, b kvstore.Backend)
		wantErr bool
	}{
		{
			name: "memory",
			env:  map[string]string{"STORE_BACKEND": "memory"},
			check: func(t *testing.T, b kvstore.Backend) {
				require.IsType(t, &kvstore.InMemory{}, b)
			},
		},
		{
			name: "file",
			env:  map[string]string{"STORE_BACKEND": "file", "STORE_PATH": "/tmp/sso/store.json"},
			check: func(t *testing.T, b kvstore.Backend) {
				require.IsType(t, &kvstore.File{}, b)
			},
		},
		{
			name: "sqlite",
			env:  map[string]string{"STORE_BACKEND": "sqlite", "STORE_PATH": filepath.Join(t.TempDir(), "nested", "kv.db")},
			fs:   afero.NewOsFs(),
			check: func(t *testing.T, b kvstore.Backend) {
				require.IsType(t, &kvstore.SQLite{}, b)
			},
		},
		{
			name:    "sqlite on an in-memory filesystem",
			env:     map[string]string{"STORE_BACKEND": "sqlite", "STORE_PATH": filepath.Join(t.TempDir(), "kv.db")},
			wantErr: true,
		},
		{
			name: "redis",
			env:  map[string]string{"STORE_BACKEND": "redis", "REDIS_URL": "redis://" + mr.Addr()},
			check: func(t *testing.T, b kvstore.Backend) {
				require.IsType(t, &kvstore.Redis{}, b)
			},
		},
		{
			name: "encrypted",
			env: map[string]string{
				"STORE_BACKEND":        "memory",
				"STORE_ENCRYPTION_KEY": "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
			},
			check: func(t *testing.T, b kvstore.Backend) {
				require.IsType(t, &kvstore.Encrypted{}, b)
			},
		},
		{
			name:    "unknown backend",
			env:     map[string]string{"STORE_BACKEND": "etcd"},
			wantErr: true,
		},
		{
			name:    "bad key",
			env:     map[string]string{"STORE_BACKEND": "memory", "STORE_ENCRYPTION_KEY": "zz"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			fs := tt.fs
			if fs == nil {
				fs = afero.NewMemMapFs()
			}
			b, err := kvstore.Open(config.New(), fs)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer b.Close()
			tt.check(t, b)

			ctx := context.Background()
			require.NoError(t, b.Set(ctx, "k", "v"))
			v, ok, err := b.Get(ctx, "k")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "v", v)
		})
	}
}
