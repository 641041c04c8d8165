package patch

import "fmt"

// ActionKind is the closed tagged union of per-file operations a Patch can
// carry. Add and Delete never carry a move path; only Update may.
type ActionKind string

const (
	ActionAdd    ActionKind = "add"
	ActionDelete ActionKind = "delete"
	ActionUpdate ActionKind = "update"
)

// Chunk is one contiguous edit within an Update action, resolved to an
// offset in the target file's line array.
type Chunk struct {
	OrigIndex int      // 0-based offset at which DelLines/InsLines apply
	DelLines  []string // lines removed starting at OrigIndex
	InsLines  []string // lines inserted at OrigIndex, after the deletion
}

// PatchAction is a single parsed file-level operation. Only the fields
// relevant to Kind are populated: NewFile for Add, Chunks/MovePath for
// Update, neither for Delete.
type PatchAction struct {
	Kind     ActionKind
	Path     string
	NewFile  string  // Add: full content, lines joined with "\n"
	Chunks   []Chunk // Update: ordered, non-overlapping after resolution
	MovePath string  // Update only; empty means no move
}

// Patch is an ordered mapping from path to PatchAction. Order preserves the
// sequence actions appeared in the source text; Actions is keyed for O(1)
// duplicate detection and lookup.
type Patch struct {
	Order   []string
	Actions map[string]PatchAction
	Fuzz    int // accumulated, informational only
}

func newPatch() *Patch {
	return &Patch{Actions: make(map[string]PatchAction)}
}

func (p *Patch) add(a PatchAction) {
	p.Order = append(p.Order, a.Path)
	p.Actions[a.Path] = a
}

func (p *Patch) has(path string) bool {
	_, ok := p.Actions[path]
	return ok
}

// FileChange is the commit-level view of one path's resolved change.
type FileChange struct {
	Kind       ActionKind
	OldContent string // Delete, Update
	NewContent string // Add, Update
	MovePath   string // Update only
}

// Commit is an ordered mapping from path to FileChange, structurally
// isomorphic to the Patch it was derived from but with concrete content.
type Commit struct {
	Order   []string
	Changes map[string]FileChange
}

func newCommit() *Commit {
	return &Commit{Changes: make(map[string]FileChange)}
}

func (c *Commit) add(path string, fc FileChange) {
	c.Order = append(c.Order, path)
	c.Changes[path] = fc
}

// ErrCategory discriminates the single DiffError kind into the reason
// categories a caller or test suite can match on.
type ErrCategory string

const (
	ErrFraming           ErrCategory = "Framing"
	ErrUnknownLine       ErrCategory = "UnknownLine"
	ErrDuplicateAction   ErrCategory = "DuplicateAction"
	ErrMissingFile       ErrCategory = "MissingFile"
	ErrFileExists        ErrCategory = "FileExists"
	ErrBadAddLine        ErrCategory = "BadAddLine"
	ErrBadSectionLine    ErrCategory = "BadSectionLine"
	ErrInvalidContext    ErrCategory = "InvalidContext"
	ErrOverlappingChunks ErrCategory = "OverlappingChunks"
	ErrRangeExceeded     ErrCategory = "RangeExceeded"
	ErrEmptySection      ErrCategory = "EmptySection"
	ErrUnexpectedEOF     ErrCategory = "UnexpectedEOF"
)

// DiffError is the engine's single failure mode. The message is always
// prefixed by the category so category and detail travel together in
// Error() while remaining separately inspectable via Category.
type DiffError struct {
	Category ErrCategory
	Message  string
}

func (e *DiffError) Error() string {
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func newDiffError(cat ErrCategory, format string, args ...interface{}) *DiffError {
	return &DiffError{Category: cat, Message: fmt.Sprintf(format, args...)}
}
