package history_test

import (
	"path/filepath"
	"regexp"
	"testing"

	"repohub/app/history"
)

func newTestLog(t *testing.T) *history.Log {
	t.Helper()
	return history.New(filepath.Join(t.TempDir(), "change_history.txt"))
}

func TestLogAppendFormat(t *testing.T) {
	l := newTestLog(t)

	if err := l.Append(7, "7/notes.txt", "Edited file"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	lines, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}

	want := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - Edited file: 7/notes\.txt \(repo_id: 7\)$`)
	if !want.MatchString(lines[0]) {
		t.Errorf("line %q does not match expected format", lines[0])
	}
}

func TestLogReadAll(t *testing.T) {
	t.Run("missing file reads as empty", func(t *testing.T) {
		l := newTestLog(t)
		lines, err := l.ReadAll()
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if len(lines) != 0 {
			t.Errorf("got %d lines, want 0", len(lines))
		}
	})

	t.Run("idempotent without intervening append", func(t *testing.T) {
		l := newTestLog(t)
		for i := uint(1); i <= 3; i++ {
			if err := l.Append(i, "file.txt", "Edited file"); err != nil {
				t.Fatal(err)
			}
		}
		first, err := l.ReadAll()
		if err != nil {
			t.Fatal(err)
		}
		second, err := l.ReadAll()
		if err != nil {
			t.Fatal(err)
		}
		if len(first) != len(second) {
			t.Fatalf("reads differ in length: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("line %d differs: %q vs %q", i, first[i], second[i])
			}
		}
	})
}

func TestLogForRepository(t *testing.T) {
	l := newTestLog(t)

	if err := l.Append(1, "1/a.txt", "Edited file"); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(2, "2/b.txt", "Edited file"); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(1, "1/c.txt", "Edited file"); err != nil {
		t.Fatal(err)
	}
	// id 11 must not match the id 1 marker
	if err := l.Append(11, "11/d.txt", "Edited file"); err != nil {
		t.Fatal(err)
	}

	entries, err := l.ForRepository(1)
	if err != nil {
		t.Fatalf("ForRepository() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(entries), entries)
	}
	for _, e := range entries {
		if !regexp.MustCompile(`\(repo_id: 1\)$`).MatchString(e) {
			t.Errorf("entry %q not for repository 1", e)
		}
	}
}
