package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatchFastDirs(t *testing.T) {
	root := t.TempDir()
	m := NewMatcher(root)

	if !m.Match(filepath.Join(root, ".git"), true) {
		t.Fatalf(".git directory should be ignored")
	}
	if !m.Match(filepath.Join(root, "node_modules"), true) {
		t.Fatalf("node_modules directory should be ignored")
	}
	if m.Match(filepath.Join(root, "src"), true) {
		t.Fatalf("src directory should not be ignored")
	}
}

func TestMatchGitignorePattern(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\nbuild/\n"), 0644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}

	m := NewMatcher(root)

	if !m.Match(filepath.Join(root, "debug.log"), false) {
		t.Fatalf("debug.log should match *.log")
	}
	if !m.Match(filepath.Join(root, "build"), true) {
		t.Fatalf("build/ directory should be ignored")
	}
	if m.Match(filepath.Join(root, "build"), false) {
		t.Fatalf("a file named build should not match the directory-only pattern build/")
	}
	if m.Match(filepath.Join(root, "main.go"), false) {
		t.Fatalf("main.go should not be ignored")
	}
}

func TestMatchNestedGitignore(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "pkg")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, ".gitignore"), []byte("fixtures/\n"), 0644); err != nil {
		t.Fatalf("write nested .gitignore: %v", err)
	}

	m := NewMatcher(root)
	if !m.Match(filepath.Join(sub, "fixtures"), true) {
		t.Fatalf("pkg/fixtures should be ignored per the nested .gitignore")
	}
	if m.Match(filepath.Join(root, "fixtures"), true) {
		t.Fatalf("root-level fixtures should not be ignored; the pattern is scoped to pkg/")
	}
}

func TestMatchRootItself(t *testing.T) {
	root := t.TempDir()
	m := NewMatcher(root)
	if m.Match(root, true) {
		t.Fatalf("root path should never be ignored")
	}
}
