// Package artifact manages candidate files produced during a target-size search.
// A Workspace owns every candidate created by one search invocation and
// guarantees that, after promotion and discard, the output directory contains
// at most one new file attributable to that invocation.
package artifact

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var labelPattern = regexp.MustCompile(`[^a-z0-9_-]+`)

// Workspace tracks candidate artifacts under an output directory.
type Workspace struct {
	dir    string
	stamp  string
	logger *slog.Logger

	// mu guards tracked: an interrupt handler may discard candidates
	// while a search is mid-trial.
	mu      sync.Mutex
	tracked map[string]struct{}
}

// NewWorkspace creates the output directory if needed and returns a Workspace
// stamped with the invocation time. Candidate and final file names derive
// from this stamp.
func NewWorkspace(dir string, logger *slog.Logger) (*Workspace, error) {
	if dir == "" {
		return nil, ErrEmptyDir
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}

	return &Workspace{
		dir:     dir,
		stamp:   time.Now().Format("2006-01-02_15-04-05"),
		logger:  logger.With("system", "artifact"),
		tracked: make(map[string]struct{}),
	}, nil
}

// Stamp returns the invocation timestamp used in candidate and final names.
func (w *Workspace) Stamp() string {
	return w.stamp
}

// Scratch returns a collision-free candidate path derived from the label,
// the invocation stamp, and a short unique suffix, and registers it for
// cleanup. The file is not created.
func (w *Workspace) Scratch(label string) string {
	name := fmt.Sprintf(
		"candidate_%s_%s_%s.tmp.pdf",
		sanitizeLabel(label),
		w.stamp,
		uuid.NewString()[:8],
	)

	path := filepath.Join(w.dir, name)

	w.mu.Lock()
	w.tracked[path] = struct{}{}
	w.mu.Unlock()

	return path
}

// Promote atomically renames a fully-written candidate to the given final
// file name inside the workspace directory and unregisters it. The final
// path is never written incrementally.
func (w *Workspace) Promote(candidate, finalName string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.tracked[candidate]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUntracked, candidate)
	}

	final := filepath.Join(w.dir, finalName)
	if err := os.Rename(candidate, final); err != nil {
		return "", fmt.Errorf("promote candidate %s: %w", candidate, err)
	}

	delete(w.tracked, candidate)
	w.logger.Debug("candidate promoted", "path", final)
	return final, nil
}

// Discard deletes one candidate and unregisters it. Missing files are not
// an error: a failed transform may never have written its output.
func (w *Workspace) Discard(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.discard(path)
}

// DiscardAll deletes every still-registered candidate. Promoted artifacts
// are untouched.
func (w *Workspace) DiscardAll() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path := range w.tracked {
		w.discard(path)
	}
}

func (w *Workspace) discard(path string) {
	delete(w.tracked, path)

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		w.logger.Warn("candidate removal failed", "path", path, "error", err)
	}
}

// Size returns the size in bytes of the file at path.
func Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Size(), nil
}

func sanitizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.ReplaceAll(label, " ", "_")
	label = labelPattern.ReplaceAllString(label, "")
	if label == "" {
		label = "trial"
	}
	return label
}
