package patch

import "strings"

// PatchToCommit walks the parsed actions in document order and resolves
// each into a FileChange, synthesizing Update content by splicing chunks
// into the original lines. files is the same collection TextToPatch was
// given; it is read only.
func PatchToCommit(patch Patch, files map[string]string) (Commit, error) {
	commit := newCommit()
	destinations := make(map[string]string, len(patch.Order))
	for _, path := range patch.Order {
		action := patch.Actions[path]
		switch action.Kind {
		case ActionAdd:
			commit.add(path, FileChange{Kind: ActionAdd, NewContent: action.NewFile})
			if err := claimDestination(destinations, path, path); err != nil {
				return Commit{}, err
			}
		case ActionDelete:
			commit.add(path, FileChange{Kind: ActionDelete, OldContent: files[path]})
		case ActionUpdate:
			orig := files[path]
			newContent, err := applyChunks(orig, action.Chunks)
			if err != nil {
				return Commit{}, err
			}
			commit.add(path, FileChange{
				Kind:       ActionUpdate,
				OldContent: orig,
				NewContent: newContent,
				MovePath:   action.MovePath,
			})
			dest := path
			if action.MovePath != "" {
				dest = action.MovePath
			}
			if err := claimDestination(destinations, dest, path); err != nil {
				return Commit{}, err
			}
		}
	}
	return *commit, nil
}

// claimDestination enforces invariant 5: a move's destination (or an add's
// own path) must not collide with any other action's output path.
func claimDestination(destinations map[string]string, dest, source string) error {
	if owner, ok := destinations[dest]; ok {
		return newDiffError(ErrDuplicateAction, "output path %q is claimed by both %q and %q", dest, owner, source)
	}
	destinations[dest] = source
	return nil
}

// applyChunks synthesizes the post-patch content for one file by iterating
// chunks in order: copy the untouched span before each chunk, splice in its
// insertions, and skip its deletions, per §4.4. Splitting on "\n" and
// rejoining on "\n" is required to be an identity on unchanged content, so
// no trailing-newline bookkeeping is needed beyond that round-trip.
func applyChunks(orig string, chunks []Chunk) (string, error) {
	origLines := splitLines(orig)
	var out []string
	cursor := 0
	for _, c := range chunks {
		if c.OrigIndex > len(origLines) {
			return "", newDiffError(ErrRangeExceeded, "chunk at %d exceeds file length %d", c.OrigIndex, len(origLines))
		}
		if cursor > c.OrigIndex {
			return "", newDiffError(ErrOverlappingChunks, "chunk at %d overlaps preceding chunk ending at %d", c.OrigIndex, cursor)
		}
		out = append(out, origLines[cursor:c.OrigIndex]...)
		out = append(out, c.InsLines...)
		cursor = c.OrigIndex + len(c.DelLines)
	}
	out = append(out, origLines[cursor:]...)
	return strings.Join(out, "\n"), nil
}

// ApplyCommit materializes a Commit into the output file collection. Add
// and Update write new content; a move writes under MovePath instead of the
// original path. Delete omits the path. Only paths the commit touched
// appear in the result — callers carry the rest of the collection forward.
func ApplyCommit(commit Commit) map[string]string {
	out := make(map[string]string, len(commit.Order))
	for _, path := range commit.Order {
		change := commit.Changes[path]
		switch change.Kind {
		case ActionAdd:
			out[path] = change.NewContent
		case ActionDelete:
			// omitted from output
		case ActionUpdate:
			dest := path
			if change.MovePath != "" {
				dest = change.MovePath
			}
			out[dest] = change.NewContent
		}
	}
	return out
}
