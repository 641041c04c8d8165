package patch

import "strings"

// tierFuzz is the fuzz contribution of each equality tier, indexed 0..2
// matching the three-tier ladder in §4.3.
var tierFuzz = [3]int{0, 1, 100}

// eofFuzzPenalty is added when an End-of-File hunk's suffix match fails and
// the locator falls back to an ordinary forward search (§4.3, §9).
const eofFuzzPenalty = 10000

// linesEqual compares a and b under the given tier's equality relation:
// 0 exact, 1 trailing-whitespace-trimmed, 2 fully trimmed.
func linesEqual(a, b string, tier int) bool {
	switch tier {
	case 0:
		return a == b
	case 1:
		return strings.TrimRight(a, " \t") == strings.TrimRight(b, " \t")
	default:
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
}

// matchAt reports whether C equals L[pos:pos+len(C)] under tier's equality.
func matchAt(L, C []string, pos, tier int) bool {
	if pos < 0 || pos+len(C) > len(L) {
		return false
	}
	for i, c := range C {
		if !linesEqual(L[pos+i], c, tier) {
			return false
		}
	}
	return true
}

// searchForward scans each tier in turn, left to right from start, and
// returns the first position any tier matches at. The first tier with any
// match wins; within a tier the earliest position wins.
func searchForward(L, C []string, start int) (pos, fuzz int, found bool) {
	if len(C) == 0 {
		return start, 0, true
	}
	for tier := 0; tier < 3; tier++ {
		for p := start; p+len(C) <= len(L); p++ {
			if matchAt(L, C, p, tier) {
				return p, tierFuzz[tier], true
			}
		}
	}
	return 0, 0, false
}

// locate resolves a context sequence C against file lines L starting the
// search at s. When eof is set, C is first tried as a suffix of L (a single
// fixed-position check under the same tiered ladder); on failure it falls
// back to an ordinary forward search from s with eofFuzzPenalty added, per
// §4.3's "loud warning" design.
func locate(L, C []string, s int, eof bool) (pos, fuzz int, found bool) {
	if len(C) == 0 {
		return s, 0, true
	}
	if eof {
		suffixStart := len(L) - len(C)
		if suffixStart < 0 {
			suffixStart = 0
		}
		for tier := 0; tier < 3; tier++ {
			if matchAt(L, C, suffixStart, tier) {
				return suffixStart, tierFuzz[tier], true
			}
		}
		p, f, ok := searchForward(L, C, s)
		if ok {
			return p, f + eofFuzzPenalty, true
		}
		return 0, 0, false
	}
	return searchForward(L, C, s)
}
