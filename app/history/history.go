// Package history keeps the append-only change log: one line per
// successful file edit, in the fixed format
//
//	<timestamp> - <message>: <filename> (repo_id: <id>)
//
// Entries are never rewritten or removed. Appends are serialized with a
// process-local mutex so concurrent edits cannot interleave partial lines.
package history

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

type Log struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Log { return &Log{path: path} }

// Append writes one entry. The log file is created on first use.
func (l *Log) Append(repoID uint, filename, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s - %s: %s (repo_id: %d)\n", time.Now().Format(timeLayout), message, filename, repoID)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

// ReadAll returns every entry verbatim, trailing whitespace stripped.
// A missing log file reads as empty, not as an error.
func (l *Log) ReadAll() ([]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), " \t\r\n"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history log: %w", err)
	}
	return lines, nil
}

// ForRepository returns only the entries recorded for one repository.
// The upstream design returned the whole log to every detail view; the
// per-id filter replaces that.
func (l *Log) ForRepository(repoID uint) ([]string, error) {
	lines, err := l.ReadAll()
	if err != nil {
		return nil, err
	}
	marker := fmt.Sprintf("(repo_id: %d)", repoID)
	var out []string
	for _, line := range lines {
		if strings.HasSuffix(line, marker) {
			out = append(out, line)
		}
	}
	return out, nil
}
