// Package fileops is the disk boundary around the pure patch engine: it
// loads a directory into the in-memory file collection internal/patch
// operates on, and writes the engine's output mapping back to disk.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deepaste-ai/partial-edit/internal/ignore"
)

// FileInfo describes one filesystem entry.
type FileInfo struct {
	Path      string
	Content   string
	Size      int64
	Mode      os.FileMode
	IsDir     bool
	ModTime   int64
	Exists    bool
	IsSymlink bool
}

// GetFile reads path and returns its FileInfo. A non-existent path is not an
// error: the returned FileInfo has Exists set to false.
func GetFile(path string) (*FileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileInfo{Path: path, Exists: false}, nil
		}
		return nil, fmt.Errorf("error getting file info: %w", err)
	}

	fileInfo := &FileInfo{
		Path:      path,
		Size:      info.Size(),
		Mode:      info.Mode(),
		IsDir:     info.IsDir(),
		ModTime:   info.ModTime().Unix(),
		Exists:    true,
		IsSymlink: info.Mode()&os.ModeSymlink != 0,
	}

	if fileInfo.IsSymlink {
		target, err := os.Readlink(path)
		if err != nil {
			return nil, fmt.Errorf("error reading symlink: %w", err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		targetInfo, err := GetFile(target)
		if err != nil {
			return nil, fmt.Errorf("error getting symlink target info: %w", err)
		}
		fileInfo.IsDir = targetInfo.IsDir
		fileInfo.Size = targetInfo.Size
	}

	if fileInfo.IsDir {
		return fileInfo, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	fileInfo.Content = string(content)

	return fileInfo, nil
}

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(path string, content string, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directories: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}
	return nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file (or at least not
// a directory).
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadTree walks root and returns a file collection keyed by path relative
// to root, using forward slashes, skipping anything ignore.Matcher excludes.
// This is the map internal/patch.ProcessPatch and its identification
// helpers operate over.
func LoadTree(root string) (map[string]string, error) {
	matcher := ignore.NewMatcher(root)
	files := make(map[string]string)

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if matcher.Match(path, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error loading tree at %s: %w", root, err)
	}
	return files, nil
}

// WriteChanged materializes the engine's output mapping back under root,
// and removes any path named in removed (deletions and move sources). The
// output mapping from internal/patch.ProcessPatch only contains touched
// paths; removed carries the ones that disappeared rather than changed.
func WriteChanged(root string, changed map[string]string, removed []string) error {
	for rel, content := range changed {
		if err := WriteFile(filepath.Join(root, filepath.FromSlash(rel)), content, 0644); err != nil {
			return err
		}
	}
	for _, rel := range removed {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("error removing %s: %w", path, err)
		}
	}
	return nil
}
