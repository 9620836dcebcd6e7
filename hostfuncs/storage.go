package hostfuncs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scope identifies whose files a storage call touches. Filled from the
// current invocation's metadata.
type Scope struct {
	NodeID string
	UserID string
}

// DirStorage backs the storage namespace with a directory tree on the host
// filesystem. Paths cross the boundary as opaque JSON objects of the form
// {"path":"..."}; every resolved path is confined to the configured root, so
// a node cannot escape its sandbox with dot segments.
type DirStorage struct {
	root string
}

// NewDirStorage returns storage rooted at the given directory.
func NewDirStorage(root string) (*DirStorage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &DirStorage{root: abs}, nil
}

// Root returns the absolute storage root.
func (s *DirStorage) Root() string { return s.root }

type pathObject struct {
	Path string `json:"path"`
}

// PathJSON renders a path as the wire object.
func PathJSON(path string) string {
	data, _ := json.Marshal(pathObject{Path: path})
	return string(data)
}

// resolve parses a wire path object and confines it to the root.
func (s *DirStorage) resolve(pathJSON string) (string, error) {
	var p pathObject
	if err := json.Unmarshal([]byte(pathJSON), &p); err != nil {
		return "", fmt.Errorf("malformed path object: %w", err)
	}
	if p.Path == "" {
		return "", fmt.Errorf("empty path")
	}

	full := p.Path
	if !filepath.IsAbs(full) {
		full = filepath.Join(s.root, full)
	}
	full = filepath.Clean(full)
	if full != s.root && !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes storage root", p.Path)
	}
	return full, nil
}

// dir ensures a scope directory exists and returns its wire object.
func (s *DirStorage) dir(parts ...string) (string, error) {
	full := filepath.Join(append([]string{s.root}, parts...)...)
	if err := os.MkdirAll(full, 0o755); err != nil {
		return "", fmt.Errorf("create scope dir: %w", err)
	}
	return PathJSON(full), nil
}

// StorageDir returns the app's durable storage directory, optionally scoped
// to the calling node.
func (s *DirStorage) StorageDir(scope Scope, nodeScoped bool) (string, error) {
	if nodeScoped && scope.NodeID != "" {
		return s.dir("storage", "nodes", scope.NodeID)
	}
	return s.dir("storage")
}

// UploadDir returns the shared upload inbox.
func (s *DirStorage) UploadDir() (string, error) {
	return s.dir("upload")
}

// CacheDir returns a cache directory, scoped by node and user as requested.
func (s *DirStorage) CacheDir(scope Scope, nodeScoped, userScoped bool) (string, error) {
	parts := []string{"cache"}
	if nodeScoped && scope.NodeID != "" {
		parts = append(parts, "nodes", scope.NodeID)
	}
	if userScoped && scope.UserID != "" {
		parts = append(parts, "users", scope.UserID)
	}
	return s.dir(parts...)
}

// UserDir returns the calling user's directory, optionally scoped to the
// node.
func (s *DirStorage) UserDir(scope Scope, nodeScoped bool) (string, error) {
	if scope.UserID == "" {
		return "", fmt.Errorf("no user in scope")
	}
	if nodeScoped && scope.NodeID != "" {
		return s.dir("users", scope.UserID, "nodes", scope.NodeID)
	}
	return s.dir("users", scope.UserID)
}

// Read returns the contents of the file a path object names.
func (s *DirStorage) Read(pathJSON string) ([]byte, error) {
	full, err := s.resolve(pathJSON)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", full, err)
	}
	return data, nil
}

// Write stores data at the file a path object names, creating parent
// directories as needed.
func (s *DirStorage) Write(pathJSON string, data []byte) error {
	full, err := s.resolve(pathJSON)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", full, err)
	}
	return nil
}

// List returns the directory entries under a path object as a JSON array of
// path objects. Entries are returned in directory order.
func (s *DirStorage) List(pathJSON string) (string, error) {
	full, err := s.resolve(pathJSON)
	if err != nil {
		return "", err
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		return "", fmt.Errorf("list %s: %w", full, err)
	}

	paths := make([]pathObject, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, pathObject{Path: filepath.Join(full, e.Name())})
	}
	data, err := json.Marshal(paths)
	if err != nil {
		return "", fmt.Errorf("marshal listing: %w", err)
	}
	return string(data), nil
}
