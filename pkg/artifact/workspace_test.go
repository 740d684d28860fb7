package artifact_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/condense/pkg/artifact"
)

func newWorkspace(t *testing.T) (*artifact.Workspace, string) {
	t.Helper()

	dir := t.TempDir()
	ws, err := artifact.NewWorkspace(dir, slog.Default())
	if err != nil {
		t.Fatalf("NewWorkspace() error = %v", err)
	}
	return ws, dir
}

func writeCandidate(t *testing.T, path string, size int) {
	t.Helper()

	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write candidate %s: %v", path, err)
	}
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir %s: %v", dir, err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestNewWorkspaceEmptyDir(t *testing.T) {
	_, err := artifact.NewWorkspace("", slog.Default())
	if !errors.Is(err, artifact.ErrEmptyDir) {
		t.Fatalf("NewWorkspace(\"\") error = %v, want ErrEmptyDir", err)
	}
}

func TestNewWorkspaceCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")

	if _, err := artifact.NewWorkspace(dir, slog.Default()); err != nil {
		t.Fatalf("NewWorkspace() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s, stat = %v, %v", dir, info, err)
	}
}

func TestScratchPathsAreUnique(t *testing.T) {
	ws, dir := newWorkspace(t)

	seen := make(map[string]struct{})
	for range 10 {
		path := ws.Scratch("recompress-q95")
		if _, dup := seen[path]; dup {
			t.Fatalf("Scratch() returned duplicate path %s", path)
		}
		seen[path] = struct{}{}

		if filepath.Dir(path) != dir {
			t.Errorf("Scratch() path %s outside workspace dir %s", path, dir)
		}
	}
}

func TestScratchSanitizesLabel(t *testing.T) {
	ws, _ := newWorkspace(t)

	path := filepath.Base(ws.Scratch("Raster w1600 / q95!"))
	if strings.ContainsAny(path, " /!") {
		t.Errorf("Scratch() label not sanitized: %s", path)
	}
	if !strings.HasPrefix(path, "candidate_raster_w1600__q95") {
		t.Errorf("Scratch() name = %s, want candidate_raster_w1600__q95 prefix", path)
	}
}

func TestPromoteRenamesCandidate(t *testing.T) {
	ws, dir := newWorkspace(t)

	candidate := ws.Scratch("cleanup")
	writeCandidate(t, candidate, 128)

	final, err := ws.Promote(candidate, "compressed_5MB_test.pdf")
	if err != nil {
		t.Fatalf("Promote() error = %v", err)
	}

	if final != filepath.Join(dir, "compressed_5MB_test.pdf") {
		t.Errorf("Promote() final = %s", final)
	}
	if _, err := os.Stat(candidate); !os.IsNotExist(err) {
		t.Errorf("candidate still present after promote: %v", err)
	}

	size, err := artifact.Size(final)
	if err != nil || size != 128 {
		t.Errorf("promoted file size = %d, %v, want 128", size, err)
	}
}

func TestPromoteUntrackedFails(t *testing.T) {
	ws, dir := newWorkspace(t)

	stray := filepath.Join(dir, "stray.pdf")
	writeCandidate(t, stray, 16)

	if _, err := ws.Promote(stray, "final.pdf"); !errors.Is(err, artifact.ErrUntracked) {
		t.Fatalf("Promote(untracked) error = %v, want ErrUntracked", err)
	}
}

func TestDiscardMissingFile(t *testing.T) {
	ws, _ := newWorkspace(t)

	// a failed transform may never have written its output
	ws.Discard(ws.Scratch("recompress-q30"))
}

func TestDiscardAllLeavesPromoted(t *testing.T) {
	ws, dir := newWorkspace(t)

	winner := ws.Scratch("raster-w1600-q95")
	writeCandidate(t, winner, 64)

	for _, label := range []string{"raster-w1400-q90", "raster-w1200-q85"} {
		loser := ws.Scratch(label)
		writeCandidate(t, loser, 32)
	}

	final, err := ws.Promote(winner, "compressed_5MB_test.pdf")
	if err != nil {
		t.Fatalf("Promote() error = %v", err)
	}
	ws.DiscardAll()

	files := listFiles(t, dir)
	if len(files) != 1 || files[0] != filepath.Base(final) {
		t.Errorf("after DiscardAll, dir = %v, want only %s", files, filepath.Base(final))
	}
}

func TestDiscardAllConcurrentWithScratch(t *testing.T) {
	// an interrupt handler sweeps the workspace while the search loop is
	// still creating and discarding candidates
	ws, dir := newWorkspace(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 500 {
			path := ws.Scratch("recompress-q80")
			ws.Discard(path)
		}
	}()

	for range 500 {
		ws.DiscardAll()
	}
	<-done
	ws.DiscardAll()

	if files := listFiles(t, dir); len(files) != 0 {
		t.Errorf("concurrent discard left files: %v", files)
	}
}

func TestSizeMissingFile(t *testing.T) {
	if _, err := artifact.Size(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Fatal("Size(missing) expected error, got nil")
	}
}
