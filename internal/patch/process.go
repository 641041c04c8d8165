package patch

// ProcessPatch validates framing, parses, commits, and applies patchText
// against files, returning the resulting mapping of only the paths the
// patch touched (§4.4, §4.5). files is not mutated. Any failure at any
// stage surfaces as a single *DiffError with no partial output.
func ProcessPatch(patchText string, files map[string]string) (map[string]string, error) {
	p, _, err := TextToPatch(patchText, files)
	if err != nil {
		return nil, err
	}
	commit, err := PatchToCommit(p, files)
	if err != nil {
		return nil, err
	}
	return ApplyCommit(commit), nil
}
