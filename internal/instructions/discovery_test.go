package instructions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiscoverMergesBriefChain(t *testing.T) {
	tmp := t.TempDir()
	// Keep the global file out of the picture.
	t.Setenv("HOME", filepath.Join(tmp, "nohome"))

	parent := filepath.Join(tmp, "proj")
	child := filepath.Join(parent, "sub")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(parent, BriefFilename), []byte("parent brief"), 0o644); err != nil {
		t.Fatalf("WriteFile parent: %v", err)
	}
	if err := os.WriteFile(filepath.Join(child, BriefFilename), []byte("child brief"), 0o644); err != nil {
		t.Fatalf("WriteFile child: %v", err)
	}

	got := Discover(child)
	pi := strings.Index(got, "parent brief")
	ci := strings.Index(got, "child brief")
	if pi < 0 || ci < 0 {
		t.Fatalf("Discover missing briefs: %q", got)
	}
	if pi > ci {
		t.Fatalf("parent brief should precede child brief: %q", got)
	}
}

func TestDiscoverGlobalFile(t *testing.T) {
	tmp := t.TempDir()
	home := filepath.Join(tmp, "home")
	t.Setenv("HOME", home)
	if err := os.MkdirAll(filepath.Join(home, ".reportchat"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(home, ".reportchat", GlobalFilename), []byte("always cite CVEs"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	workdir := filepath.Join(tmp, "empty")
	if err := os.MkdirAll(workdir, 0o755); err != nil {
		t.Fatalf("MkdirAll workdir: %v", err)
	}
	if got := Discover(workdir); got != "always cite CVEs" {
		t.Fatalf("Discover=%q", got)
	}
}

func TestDiscoverEmpty(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", filepath.Join(tmp, "nohome"))
	workdir := filepath.Join(tmp, "work")
	if err := os.MkdirAll(workdir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if got := Discover(workdir); got != "" {
		t.Fatalf("Discover on empty tree=%q want empty", got)
	}
}
