package patch

import "strings"

// parser is a cursor-driven recognizer over the patch text's line stream.
// pos is the index of the next unconsumed line; end is the index of the
// closing "*** End Patch" line, which parseActions never steps past.
type parser struct {
	lines []string
	pos   int
	end   int
	files map[string]string
	patch *Patch
}

// TextToPatch parses patchText against the given file collection, returning
// the resulting Patch and its total accumulated fuzz. files is read only to
// validate path existence and to supply context for the locator; it is
// never mutated.
func TextToPatch(patchText string, files map[string]string) (Patch, int, error) {
	lines := splitLines(patchText)
	if err := validateFraming(lines); err != nil {
		return Patch{}, 0, err
	}
	p := &parser{
		lines: lines,
		pos:   1,
		end:   len(lines) - 1,
		files: files,
		patch: newPatch(),
	}
	if err := p.parseActions(); err != nil {
		return Patch{}, 0, err
	}
	return *p.patch, p.patch.Fuzz, nil
}

func (p *parser) isDone() bool {
	return p.pos >= p.end
}

func (p *parser) parseActions() error {
	for !p.isDone() {
		line := stripCR(p.lines[p.pos])
		switch {
		case strings.HasPrefix(line, updateFilePrefix):
			if err := p.parseUpdateFile(line); err != nil {
				return err
			}
		case strings.HasPrefix(line, deleteFilePrefix):
			if err := p.parseDeleteFile(line); err != nil {
				return err
			}
		case strings.HasPrefix(line, addFilePrefix):
			if err := p.parseAddFile(line); err != nil {
				return err
			}
		default:
			return newDiffError(ErrUnknownLine, "line %d: %q is not a recognized action header", p.pos, line)
		}
	}
	return nil
}

func (p *parser) parseDeleteFile(header string) error {
	path := strings.TrimPrefix(header, deleteFilePrefix)
	p.pos++
	if p.patch.has(path) {
		return newDiffError(ErrDuplicateAction, "path %q already has an action in this patch", path)
	}
	if _, ok := p.files[path]; !ok {
		return newDiffError(ErrMissingFile, "delete target %q does not exist", path)
	}
	p.patch.add(PatchAction{Kind: ActionDelete, Path: path})
	return nil
}

func (p *parser) parseAddFile(header string) error {
	path := strings.TrimPrefix(header, addFilePrefix)
	p.pos++
	if p.patch.has(path) {
		return newDiffError(ErrDuplicateAction, "path %q already has an action in this patch", path)
	}
	if _, ok := p.files[path]; ok {
		return newDiffError(ErrFileExists, "add target %q already exists", path)
	}
	var content []string
	for !p.isDone() {
		l := stripCR(p.lines[p.pos])
		if l == bareSentinel {
			p.pos++
			break
		}
		if isSectionTerminator(l) {
			break
		}
		if !strings.HasPrefix(l, "+") {
			return newDiffError(ErrBadAddLine, "line %d: add-file body line %q does not start with '+'", p.pos, l)
		}
		content = append(content, strings.TrimPrefix(l, "+"))
		p.pos++
	}
	if len(content) == 0 {
		return newDiffError(ErrEmptySection, "add file %q has no body", path)
	}
	p.patch.add(PatchAction{Kind: ActionAdd, Path: path, NewFile: strings.Join(content, "\n")})
	return nil
}

func (p *parser) parseUpdateFile(header string) error {
	path := strings.TrimPrefix(header, updateFilePrefix)
	p.pos++
	if p.patch.has(path) {
		return newDiffError(ErrDuplicateAction, "path %q already has an action in this patch", path)
	}
	orig, ok := p.files[path]
	if !ok {
		return newDiffError(ErrMissingFile, "update target %q does not exist", path)
	}
	origLines := splitLines(orig)

	movePath := ""
	if !p.isDone() {
		l := stripCR(p.lines[p.pos])
		if strings.HasPrefix(l, moveToPrefix) {
			movePath = strings.TrimPrefix(l, moveToPrefix)
			p.pos++
		}
	}

	if p.isDone() {
		return newDiffError(ErrEmptySection, "update file %q has no hunks", path)
	}

	var chunks []Chunk
	cursor := 0
	fuzzTotal := 0
	first := true
	for !p.isDone() {
		l := stripCR(p.lines[p.pos])
		startsHunk := strings.HasPrefix(l, hunkSeparatorBare)
		if !first && !startsHunk {
			break
		}
		hc, newCursor, fz, err := p.parseHunk(origLines, cursor, startsHunk)
		if err != nil {
			return err
		}
		chunks = append(chunks, hc...)
		cursor = newCursor
		fuzzTotal += fz
		first = false
	}
	p.patch.Fuzz += fuzzTotal
	p.patch.add(PatchAction{Kind: ActionUpdate, Path: path, Chunks: chunks, MovePath: movePath})
	return nil
}

// parseHunk optionally consumes one "@@ ..." or "@@" header, then its
// section-line body, resolving the body against origLines starting at
// cursor. A Hunk's leading "@@" is itself optional per grammar — the first
// hunk in an update may begin directly with section lines — so hasHeader
// tells parseHunk whether a header line is present to consume.
func (p *parser) parseHunk(origLines []string, cursor int, hasHeader bool) ([]Chunk, int, int, error) {
	anchorFuzz := 0
	if hasHeader {
		header := stripCR(p.lines[p.pos])
		p.pos++
		if header != hunkSeparatorBare {
			anchor := strings.TrimPrefix(header, hunkSeparatorBare)
			anchor = strings.TrimPrefix(anchor, " ")
			pos, fz, found := findAnchor(origLines, anchor, cursor)
			if !found {
				return nil, 0, 0, newDiffError(ErrInvalidContext, "anchor %q not found from line %d onward", anchor, cursor)
			}
			cursor = pos + 1
			anchorFuzz = fz
		}
	}

	old, chunks, eof, err := p.parseSectionLines()
	if err != nil {
		return nil, 0, 0, err
	}

	pos, fz, found := locate(origLines, old, cursor, eof)
	if !found {
		return nil, 0, 0, newDiffError(ErrInvalidContext, "context not found (eof=%v): %q", eof, strings.Join(old, "\n"))
	}

	rebased := make([]Chunk, len(chunks))
	for i, c := range chunks {
		rebased[i] = Chunk{OrigIndex: c.OrigIndex + pos, DelLines: c.DelLines, InsLines: c.InsLines}
	}
	return rebased, pos + len(old), anchorFuzz + fz, nil
}

// parseSectionLines reads section lines (" ", "+", "-") until a section
// terminator, returning the "old" context sequence (keep+delete lines, in
// order), the chunks emitted at each keep-mode boundary (orig_index
// relative to old), and whether the hunk was closed by "*** End of File".
func (p *parser) parseSectionLines() (old []string, chunks []Chunk, eof bool, err error) {
	var delLines, insLines []string
	sawLine := false

	flush := func() {
		if len(delLines) > 0 || len(insLines) > 0 {
			chunks = append(chunks, Chunk{
				OrigIndex: len(old) - len(delLines),
				DelLines:  append([]string{}, delLines...),
				InsLines:  append([]string{}, insLines...),
			})
			delLines, insLines = nil, nil
		}
	}

	for !p.isDone() {
		l := stripCR(p.lines[p.pos])
		if l == bareSentinel {
			p.pos++
			break
		}
		if strings.HasPrefix(l, endOfFileMarker) {
			eof = true
			p.pos++
			break
		}
		if isSectionTerminator(l) {
			break
		}
		sawLine = true
		if l == "" {
			l = " "
		}
		switch l[0] {
		case ' ':
			flush()
			old = append(old, l[1:])
		case '-':
			delLines = append(delLines, l[1:])
			old = append(old, l[1:])
		case '+':
			insLines = append(insLines, l[1:])
		default:
			return nil, nil, false, newDiffError(ErrBadSectionLine, "line %d: expected ' ', '+' or '-', got %q", p.pos, l)
		}
		p.pos++
	}
	flush()
	if !sawLine {
		return nil, nil, false, newDiffError(ErrEmptySection, "hunk at line %d has no body", p.pos)
	}
	return old, chunks, eof, nil
}

// findAnchor searches origLines from start forward for an anchor, first
// under exact equality, then (adding 1 fuzz) under full-trim equality. An
// occurrence before start is never considered — repeated anchors within a
// file disambiguate by always advancing, never backtracking (§4.2, §9).
func findAnchor(origLines []string, anchor string, start int) (pos, fuzz int, found bool) {
	for i := start; i < len(origLines); i++ {
		if origLines[i] == anchor {
			return i, 0, true
		}
	}
	for i := start; i < len(origLines); i++ {
		if strings.TrimSpace(origLines[i]) == strings.TrimSpace(anchor) {
			return i, 1, true
		}
	}
	return 0, 0, false
}
