// Package gitstage records an applied patch's effect in git's index, as an
// opt-in alternative to the CLI's .old/.patch side files.
package gitstage

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Stage adds every path in added (files the commit created, updated, or
// moved to) and removes every path in removed (files the commit deleted or
// moved from) in the git repository rooted at or above dir. It is a no-op,
// not an error, when dir is not inside a git repository: staging is a
// convenience, never a precondition for apply.
func Stage(dir string, added []string, removed []string) error {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err == git.ErrRepositoryNotExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error opening git repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("error getting worktree: %w", err)
	}

	for _, path := range added {
		if _, err := wt.Add(path); err != nil {
			return fmt.Errorf("error staging %s: %w", path, err)
		}
	}
	for _, path := range removed {
		if _, err := wt.Remove(path); err != nil {
			return fmt.Errorf("error unstaging %s: %w", path, err)
		}
	}
	return nil
}
