package patch

import "testing"

func TestLocateExactTier(t *testing.T) {
	L := []string{"a", "b", "c"}
	pos, fuzz, found := locate(L, []string{"b"}, 0, false)
	if !found || pos != 1 || fuzz != 0 {
		t.Fatalf("got pos=%d fuzz=%d found=%v", pos, fuzz, found)
	}
}

func TestLocateTrailingWhitespaceTier(t *testing.T) {
	L := []string{"a ", "b\t"}
	pos, fuzz, found := locate(L, []string{"a"}, 0, false)
	if !found || pos != 0 || fuzz != 1 {
		t.Fatalf("got pos=%d fuzz=%d found=%v", pos, fuzz, found)
	}
}

func TestLocateFullTrimTier(t *testing.T) {
	L := []string{"  name: \"x\","}
	pos, fuzz, found := locate(L, []string{"   name: \"x\","}, 0, false)
	if !found || pos != 0 || fuzz != 100 {
		t.Fatalf("got pos=%d fuzz=%d found=%v", pos, fuzz, found)
	}
}

func TestLocateNotFound(t *testing.T) {
	L := []string{"a", "b"}
	_, _, found := locate(L, []string{"z"}, 0, false)
	if found {
		t.Fatalf("expected not found")
	}
}

func TestLocateEOFSuffixPreferred(t *testing.T) {
	L := []string{"a", "b", "c"}
	pos, fuzz, found := locate(L, []string{"b", "c"}, 0, true)
	if !found || pos != 1 || fuzz != 0 {
		t.Fatalf("got pos=%d fuzz=%d found=%v", pos, fuzz, found)
	}
}

func TestLocateEOFFallbackPenalty(t *testing.T) {
	// "b" is not a suffix of L (L's suffix is "c"), so the suffix attempt
	// fails and the locator must fall back to a forward search, paying the
	// 10,000 penalty per §4.3/§9.
	L := []string{"a", "b", "c"}
	pos, fuzz, found := locate(L, []string{"b"}, 0, true)
	if !found || pos != 1 || fuzz != eofFuzzPenalty {
		t.Fatalf("got pos=%d fuzz=%d found=%v", pos, fuzz, found)
	}
}

func TestLocateEmptyContextMatchesAtStart(t *testing.T) {
	L := []string{"a", "b"}
	pos, fuzz, found := locate(L, nil, 1, false)
	if !found || pos != 1 || fuzz != 0 {
		t.Fatalf("got pos=%d fuzz=%d found=%v", pos, fuzz, found)
	}
}

func TestLocateEarliestPositionWinsWithinTier(t *testing.T) {
	L := []string{"x", "a", "x", "a"}
	pos, _, found := locate(L, []string{"a"}, 0, false)
	if !found || pos != 1 {
		t.Fatalf("got pos=%d found=%v, want earliest match at 1", pos, found)
	}
}
