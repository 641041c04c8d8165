package patch

import "strings"

const (
	beginPatchMarker  = "*** Begin Patch"
	endPatchMarker    = "*** End Patch"
	updateFilePrefix  = "*** Update File: "
	deleteFilePrefix  = "*** Delete File: "
	addFilePrefix     = "*** Add File: "
	moveToPrefix      = "*** Move to: "
	endOfFileMarker   = "*** End of File"
	hunkSeparatorBare = "@@"
	bareSentinel      = "***"
)

// stripCR removes a single trailing carriage return, the only CR tolerance
// the bit-level format requires (§6): a trailing \r is ignored for sentinel
// and prefix recognition everywhere else content is compared verbatim.
func stripCR(line string) string {
	return strings.TrimSuffix(line, "\r")
}

// splitLines splits patch text on \n, preserving empty lines and never
// collapsing consecutive separators. Trailing \r is left in place here;
// callers strip it at comparison sites per §4.1.
func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

// validateFraming checks the outer sentinels per §4.1: at least two lines,
// the first (CR-stripped) starting with Begin Patch, the last (CR-stripped)
// equal to End Patch.
func validateFraming(lines []string) error {
	if len(lines) < 2 {
		return newDiffError(ErrFraming, "patch body too short to contain framing sentinels")
	}
	first := stripCR(lines[0])
	if !strings.HasPrefix(first, beginPatchMarker) {
		return newDiffError(ErrFraming, "missing %q sentinel", beginPatchMarker)
	}
	last := stripCR(lines[len(lines)-1])
	if last != endPatchMarker {
		return newDiffError(ErrUnexpectedEOF, "missing closing %q sentinel", endPatchMarker)
	}
	return nil
}

// FilesNeeded returns, in document order, the paths named by
// "*** Update File: " or "*** Delete File: " headers. It scans raw lines
// without invoking the parser and never fails on malformed input.
func FilesNeeded(patchText string) []string {
	var out []string
	for _, raw := range splitLines(patchText) {
		line := stripCR(raw)
		switch {
		case strings.HasPrefix(line, updateFilePrefix):
			out = append(out, strings.TrimPrefix(line, updateFilePrefix))
		case strings.HasPrefix(line, deleteFilePrefix):
			out = append(out, strings.TrimPrefix(line, deleteFilePrefix))
		}
	}
	return out
}

// FilesAdded returns, in document order, the paths named by
// "*** Add File: " headers. Like FilesNeeded it never fails.
func FilesAdded(patchText string) []string {
	var out []string
	for _, raw := range splitLines(patchText) {
		line := stripCR(raw)
		if strings.HasPrefix(line, addFilePrefix) {
			out = append(out, strings.TrimPrefix(line, addFilePrefix))
		}
	}
	return out
}

// isSectionTerminator reports whether line begins a new section per §4.2's
// termination rule, ending the current hunk body.
func isSectionTerminator(line string) bool {
	if line == bareSentinel {
		return true
	}
	switch {
	case strings.HasPrefix(line, hunkSeparatorBare),
		strings.HasPrefix(line, endPatchMarker),
		strings.HasPrefix(line, updateFilePrefix),
		strings.HasPrefix(line, deleteFilePrefix),
		strings.HasPrefix(line, addFilePrefix),
		strings.HasPrefix(line, endOfFileMarker):
		return true
	}
	return false
}
