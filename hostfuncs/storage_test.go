package hostfuncs

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *DirStorage {
	t.Helper()
	s, err := NewDirStorage(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestDirStorageWriteReadRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	path := PathJSON("reports/summary.json")
	require.NoError(t, s.Write(path, []byte(`{"total":3}`)))

	data, err := s.Read(path)
	require.NoError(t, err)
	assert.Equal(t, `{"total":3}`, string(data))
}

func TestDirStorageRejectsEscapingPaths(t *testing.T) {
	s := newTestStorage(t)

	for _, path := range []string{
		"../outside.txt",
		"a/../../outside.txt",
		"/etc/passwd",
	} {
		err := s.Write(PathJSON(path), []byte("x"))
		require.Error(t, err, "path %q must be rejected", path)

		_, err = s.Read(PathJSON(path))
		require.Error(t, err)
	}
}

func TestDirStorageRejectsMalformedPathObject(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Read(`not json`)
	assert.Error(t, err)
	_, err = s.Read(`{"path":""}`)
	assert.Error(t, err)
}

func TestDirStorageScopedDirs(t *testing.T) {
	s := newTestStorage(t)
	scope := Scope{NodeID: "node-7", UserID: "user-9"}

	cases := []struct {
		name string
		call func() (string, error)
		want string
	}{
		{"storage shared", func() (string, error) { return s.StorageDir(scope, false) }, "storage"},
		{"storage node", func() (string, error) { return s.StorageDir(scope, true) }, filepath.Join("storage", "nodes", "node-7")},
		{"upload", s.UploadDir, "upload"},
		{"cache shared", func() (string, error) { return s.CacheDir(scope, false, false) }, "cache"},
		{"cache node+user", func() (string, error) { return s.CacheDir(scope, true, true) }, filepath.Join("cache", "nodes", "node-7", "users", "user-9")},
		{"user", func() (string, error) { return s.UserDir(scope, false) }, filepath.Join("users", "user-9")},
		{"user node", func() (string, error) { return s.UserDir(scope, true) }, filepath.Join("users", "user-9", "nodes", "node-7")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dirJSON, err := tc.call()
			require.NoError(t, err)

			var p struct {
				Path string `json:"path"`
			}
			require.NoError(t, json.Unmarshal([]byte(dirJSON), &p))
			assert.Equal(t, filepath.Join(s.Root(), tc.want), p.Path)
			assert.DirExists(t, p.Path)
		})
	}
}

func TestDirStorageUserDirRequiresUser(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.UserDir(Scope{NodeID: "n"}, false)
	assert.Error(t, err)
}

func TestDirStorageList(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Write(PathJSON("data/a.txt"), []byte("a")))
	require.NoError(t, s.Write(PathJSON("data/b.txt"), []byte("b")))

	listing, err := s.List(PathJSON("data"))
	require.NoError(t, err)

	var paths []struct {
		Path string `json:"path"`
	}
	require.NoError(t, json.Unmarshal([]byte(listing), &paths))
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(s.Root(), "data", "a.txt"), paths[0].Path)
	assert.Equal(t, filepath.Join(s.Root(), "data", "b.txt"), paths[1].Path)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("k", "v1")
	s.Set("k", "v2")
	v, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 1, s.Len())

	s.Delete("k")
	_, ok = s.Get("k")
	assert.False(t, ok)
}
