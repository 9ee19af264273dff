// Package storage manages the upload directory. Freshly uploaded files
// land at the top level of the root; file edits may create files under a
// per-repository subdirectory named after the record id. Every
// caller-supplied path is resolved against the root and rejected if it
// would land outside it.
package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a relative path resolves to a
// location outside the storage root.
var ErrOutsideRoot = fmt.Errorf("path escapes storage root")

var allowedExtensions = map[string]struct{}{
	"txt": {}, "pdf": {}, "png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "zip": {},
}

// AllowedExtension reports whether an upload filename is acceptable:
// it must contain a dot, and the suffix after the last dot must be on
// the allow-list (case-insensitive). Only uploads are filtered; the
// edit flow touches paths without this check.
func AllowedExtension(name string) bool {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(name[i+1:])]
	return ok
}

// SanitizeFilename reduces a client-supplied filename to a single safe
// path component: directory parts are dropped, spaces become
// underscores, anything outside [A-Za-z0-9_.-] is removed, and leading
// dots are stripped so the result can never traverse upward or hide as
// a dotfile. An empty result becomes "unnamed".
func SanitizeFilename(raw string) string {
	name := strings.ReplaceAll(raw, "\\", "/")
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "unnamed"
	}
	return out
}

type Store struct {
	root string
}

// New creates the root directory if needed and anchors all later path
// resolution at its absolute form.
func New(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Store{root: abs}, nil
}

func (s *Store) Root() string { return s.root }

// Resolve maps a relative path to an absolute path inside the root,
// failing closed when the cleaned result escapes it.
func (s *Store) Resolve(rel string) (string, error) {
	abs := filepath.Join(s.root, filepath.FromSlash(rel))
	if abs != s.root && !strings.HasPrefix(abs, s.root+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return abs, nil
}

// SaveUpload writes an uploaded file at the top level of the root.
// Uploads are not namespaced per repository; only later edits create
// the per-id subdirectories.
func (s *Store) SaveUpload(name string, src io.Reader) error {
	abs, err := s.Resolve(name)
	if err != nil {
		return err
	}
	dst, err := os.Create(abs)
	if err != nil {
		return fmt.Errorf("create upload: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write upload: %w", err)
	}
	return nil
}

// ListFilesUnder walks <root>/<repoID>/ recursively and returns each
// file's path relative to the root, slash-separated. A missing
// subdirectory is an empty listing.
func (s *Store) ListFilesUnder(repoID uint) ([]string, error) {
	dir := filepath.Join(s.root, fmt.Sprintf("%d", repoID))
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk repository files: %w", err)
	}
	return files, nil
}

func (s *Store) ReadFile(rel string) (string, error) {
	abs, err := s.Resolve(rel)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile stores content byte-exact, creating parent directories as
// needed so edits can target per-repository subdirectories.
func (s *Store) WriteFile(rel string, content string) error {
	abs, err := s.Resolve(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// DeleteFile removes a top-level upload. A missing file is a no-op.
func (s *Store) DeleteFile(name string) error {
	abs, err := s.Resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
