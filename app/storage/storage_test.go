package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"repohub/app/storage"
)

func TestAllowedExtension(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"notes.txt", true},
		{"NOTES.TXT", true},
		{"photo.jpeg", true},
		{"photo.JPG", true},
		{"scan.pdf", true},
		{"anim.gif", true},
		{"img.png", true},
		{"bundle.zip", true},
		{"archive.tar.gz", false},
		{"virus.exe", false},
		{"script.sh", false},
		{"noextension", false},
		{"", false},
		{".txt", true},
		{"trailingdot.", false},
	}
	for _, tt := range tests {
		if got := storage.AllowedExtension(tt.name); got != tt.want {
			t.Errorf("AllowedExtension(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"notes.txt", "notes.txt"},
		{"my notes.txt", "my_notes.txt"},
		{"../../etc/passwd", "passwd"},
		{`..\..\windows\system.ini`, "system.ini"},
		{"/absolute/path/file.pdf", "file.pdf"},
		{"..hidden", "hidden"},
		{"weird<>:\"|?*.zip", "weird.zip"},
		{"", "unnamed"},
		{"///", "unnamed"},
	}
	for _, tt := range tests {
		if got := storage.SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStoreResolve(t *testing.T) {
	s, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	t.Run("inside root", func(t *testing.T) {
		abs, err := s.Resolve("5/notes.txt")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !strings.HasPrefix(abs, s.Root()) {
			t.Errorf("resolved path %q not under root %q", abs, s.Root())
		}
	})

	t.Run("traversal fails closed", func(t *testing.T) {
		for _, rel := range []string{"../outside.txt", "5/../../outside.txt", "../../etc/passwd"} {
			if _, err := s.Resolve(rel); !errors.Is(err, storage.ErrOutsideRoot) {
				t.Errorf("Resolve(%q) error = %v, want ErrOutsideRoot", rel, err)
			}
		}
	})
}

func TestStoreReadWriteRoundTrip(t *testing.T) {
	s, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	content := "line one\nline two\n\ttabbed"
	if err := s.WriteFile("7/notes.txt", content); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := s.ReadFile("7/notes.txt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got != content {
		t.Errorf("round trip mismatch: got %q, want %q", got, content)
	}
}

func TestStoreListFilesUnder(t *testing.T) {
	s, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	t.Run("missing subdirectory is empty", func(t *testing.T) {
		files, err := s.ListFilesUnder(42)
		if err != nil {
			t.Fatalf("ListFilesUnder() error = %v", err)
		}
		if len(files) != 0 {
			t.Errorf("got %d files, want 0", len(files))
		}
	})

	t.Run("walks recursively with root-relative paths", func(t *testing.T) {
		if err := s.WriteFile("3/notes.txt", "a"); err != nil {
			t.Fatal(err)
		}
		if err := s.WriteFile("3/docs/readme.txt", "b"); err != nil {
			t.Fatal(err)
		}
		// a file for another repository must not appear
		if err := s.WriteFile("4/other.txt", "c"); err != nil {
			t.Fatal(err)
		}

		files, err := s.ListFilesUnder(3)
		if err != nil {
			t.Fatalf("ListFilesUnder() error = %v", err)
		}
		want := map[string]bool{"3/notes.txt": true, "3/docs/readme.txt": true}
		if len(files) != len(want) {
			t.Fatalf("got %v, want keys of %v", files, want)
		}
		for _, f := range files {
			if !want[f] {
				t.Errorf("unexpected file %q", f)
			}
		}
	})
}

func TestStoreSaveAndDeleteUpload(t *testing.T) {
	s, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := s.SaveUpload("notes.txt", strings.NewReader("hello")); err != nil {
		t.Fatalf("SaveUpload() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Root(), "notes.txt")); err != nil {
		t.Fatalf("upload not at top level of root: %v", err)
	}

	if err := s.DeleteFile("notes.txt"); err != nil {
		t.Fatalf("DeleteFile() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Root(), "notes.txt")); !os.IsNotExist(err) {
		t.Fatalf("file still present after delete")
	}

	t.Run("deleting a missing file is a no-op", func(t *testing.T) {
		if err := s.DeleteFile("never-existed.txt"); err != nil {
			t.Errorf("DeleteFile() error = %v, want nil", err)
		}
	})
}
