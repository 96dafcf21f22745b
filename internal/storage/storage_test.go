// ABOUTME: Behaviour tests shared by every store backend
// ABOUTME: Redis cases run only when PETCARE_TEST_REDIS_ADDR is set

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/markalston/petcare-cli/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, found, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set("auth_token", "a.b.c"))
	v, found, err := s.Get("auth_token")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a.b.c", v)

	require.NoError(t, s.Set("auth_token", "d.e.f"))
	v, _, _ = s.Get("auth_token")
	assert.Equal(t, "d.e.f", v, "set overwrites")

	require.NoError(t, s.Set("empty", ""))
	v, found, err = s.Get("empty")
	require.NoError(t, err)
	assert.True(t, found, "empty values are still present")
	assert.Empty(t, v)

	require.NoError(t, s.Remove("auth_token"))
	_, found, err = s.Get("auth_token")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Remove("auth_token"), "removing a missing key is not an error")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	exerciseStore(t, NewFileStore(filepath.Join(t.TempDir(), "petcare")))
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewFileStore(dir).Set("user_name", "alice"))

	v, found, err := NewFileStore(dir).Get("user_name")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "alice", v)
}

func TestFileStore_Permissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "petcare")
	fs := NewFileStore(dir)
	require.NoError(t, fs.Set("auth_token", "secret"))

	info, err := os.Stat(fs.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	dirInfo, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), dirInfo.Mode().Perm())
}

func TestFileStore_CorruptFileReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("not json"), 0600))

	fs := NewFileStore(dir)
	_, found, err := fs.Get("auth_token")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, fs.Set("auth_token", "a.b.c"))
	v, _, _ := fs.Get("auth_token")
	assert.Equal(t, "a.b.c", v)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "session.db"))
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

func TestSQLiteStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("user_name", "alice"))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	v, found, err := second.Get("user_name")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "alice", v)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("PETCARE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PETCARE_TEST_REDIS_ADDR not set")
	}

	s, err := NewRedisStore(RedisOptions{Addr: addr, Prefix: "petcare-test:" + uuid.NewString() + ":"})
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	_, err := NewRedisStore(RedisOptions{Addr: "127.0.0.1:1"})
	require.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.SessionConfig
		want    interface{}
		wantErr bool
	}{
		{"file", config.SessionConfig{Backend: config.BackendFile, Dir: dir}, &FileStore{}, false},
		{"memory", config.SessionConfig{Backend: config.BackendMemory}, &MemoryStore{}, false},
		{"sqlite", config.SessionConfig{Backend: config.BackendSQLite, Dir: dir}, &SQLiteStore{}, false},
		{"unknown", config.SessionConfig{Backend: "etcd"}, nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Open(tc.cfg)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tc.want, s)
		})
	}
}
