// Package ignore provides hierarchical .gitignore matching for a tree that
// is about to be loaded into an in-memory file collection.
package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher checks paths against hierarchical .gitignore rules rooted at a
// directory. It is used by fileops.LoadTree to keep .git, node_modules, and
// similar directories out of the file collection a patch is applied to.
type Matcher struct {
	rootPath string
	fastDirs map[string]bool

	mu          sync.Mutex
	dirPatterns map[string][]gitignore.Pattern
	combined    map[string]gitignore.Matcher
}

// NewMatcher creates a Matcher rooted at rootPath. It reads .gitignore files
// hierarchically from rootPath downward as paths are queried.
func NewMatcher(rootPath string) *Matcher {
	return &Matcher{
		rootPath: rootPath,
		fastDirs: map[string]bool{
			".git":          true,
			".hg":           true,
			".svn":          true,
			"node_modules":  true,
			"__pycache__":   true,
			".pytest_cache": true,
			".cache":        true,
			".idea":         true,
			".vscode":       true,
		},
		dirPatterns: make(map[string][]gitignore.Pattern),
		combined:    make(map[string]gitignore.Matcher),
	}
}

// Match reports whether path (absolute, rooted under rootPath) should be
// excluded from the tree being loaded. isDir must be true for directories so
// that directory-only patterns such as "build/" apply correctly.
func (m *Matcher) Match(path string, isDir bool) bool {
	base := filepath.Base(path)
	if isDir && m.fastDirs[base] {
		return true
	}
	if path == m.rootPath {
		return false
	}

	relPath, err := filepath.Rel(m.rootPath, path)
	if err != nil {
		relPath = path
	}
	components := pathToComponents(relPath)
	if len(components) == 0 {
		return false
	}

	parentDir := filepath.Dir(path)
	matcher := m.getCombinedMatcher(parentDir)
	return matcher.Match(components, isDir)
}

func pathToComponents(path string) []string {
	path = filepath.ToSlash(path)
	if path == "" || path == "." {
		return nil
	}
	return strings.Split(path, "/")
}

func parsePatterns(lines []string, domain []string) []gitignore.Pattern {
	var patterns []gitignore.Pattern
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, domain))
	}
	return patterns
}

func (m *Matcher) getDirPatterns(dir string) []gitignore.Pattern {
	m.mu.Lock()
	if p, ok := m.dirPatterns[dir]; ok {
		m.mu.Unlock()
		return p
	}
	m.mu.Unlock()

	var domain []string
	if relPath, _ := filepath.Rel(m.rootPath, dir); relPath != "" && relPath != "." {
		domain = pathToComponents(relPath)
	}

	var patterns []gitignore.Pattern
	if content, err := os.ReadFile(filepath.Join(dir, ".gitignore")); err == nil {
		patterns = parsePatterns(strings.Split(string(content), "\n"), domain)
	}

	m.mu.Lock()
	m.dirPatterns[dir] = patterns
	m.mu.Unlock()
	return patterns
}

func (m *Matcher) getCombinedMatcher(dir string) gitignore.Matcher {
	m.mu.Lock()
	if mm, ok := m.combined[dir]; ok {
		m.mu.Unlock()
		return mm
	}
	m.mu.Unlock()

	var allPatterns []gitignore.Pattern
	relDir, _ := filepath.Rel(m.rootPath, dir)
	var pathParts []string
	if relDir != "" && relDir != "." {
		pathParts = pathToComponents(relDir)
	}

	currentPath := m.rootPath
	allPatterns = append(allPatterns, m.getDirPatterns(currentPath)...)
	for _, part := range pathParts {
		currentPath = filepath.Join(currentPath, part)
		allPatterns = append(allPatterns, m.getDirPatterns(currentPath)...)
	}

	matcher := gitignore.NewMatcher(allPatterns)
	m.mu.Lock()
	m.combined[dir] = matcher
	m.mu.Unlock()
	return matcher
}
