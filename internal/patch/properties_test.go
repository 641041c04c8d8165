package patch

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// lineGen produces short, printable lines with no embedded "\n" so they are
// valid elements of a file's line array.
func lineGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-zA-Z0-9_ ]{0,12}`)
}

// TestPropertyExactContextZeroFuzz is property 4: if the context is a
// verbatim contiguous subsequence of the file, the locator reports 0 fuzz.
func TestPropertyExactContextZeroFuzz(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(lineGen(), 1, 20).Draw(t, "lines")
		start := rapid.IntRange(0, len(lines)-1).Draw(t, "start")
		end := rapid.IntRange(start, len(lines)-1).Draw(t, "end")
		context := lines[start : end+1]

		pos, fuzz, found := locate(lines, context, 0, false)
		if !found {
			t.Fatalf("exact subsequence not found: lines=%v context=%v", lines, context)
		}
		if fuzz != 0 {
			t.Fatalf("exact subsequence contributed fuzz %d, want 0", fuzz)
		}
		if pos > start {
			t.Fatalf("locate returned a later position (%d) than the true one (%d)", pos, start)
		}
	})
}

// TestPropertyMonotoneOffsets is property 5: within a resolved update,
// chunk i+1's orig_index is never less than chunk i's orig_index plus its
// deletion length, for any chunk list built by the parser (not just a
// hand-written one). We build one hunk of random non-overlapping
// keep/delete/insert groups over a random file and check the invariant on
// the parsed result.
func TestPropertyMonotoneOffsets(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 10).Draw(t, "n")
		lines := make([]string, n)
		for i := range lines {
			lines[i] = rapid.StringMatching(`[a-zA-Z]{1,8}`).Draw(t, "line")
		}
		numHunks := rapid.IntRange(1, n/2+1).Draw(t, "numHunks")

		var b strings.Builder
		b.WriteString("*** Begin Patch\n*** Update File: f.ts\n")
		used := -1
		wroteAny := false
		for h := 0; h < numHunks && used+2 < n; h++ {
			idx := used + 1
			b.WriteString(" " + lines[idx] + "\n")
			b.WriteString("-" + lines[idx+1] + "\n")
			b.WriteString("+REPLACED" + rapid.StringMatching(`[0-9]{1,4}`).Draw(t, "suffix") + "\n")
			used = idx + 1
			wroteAny = true
		}
		if !wroteAny {
			t.Skip("no room for a hunk in this draw")
		}
		b.WriteString("*** End Patch")

		files := map[string]string{"f.ts": strings.Join(lines, "\n")}
		p, _, err := TextToPatch(b.String(), files)
		if err != nil {
			t.Fatalf("TextToPatch: %v", err)
		}
		chunks := p.Actions["f.ts"].Chunks
		for i := 1; i < len(chunks); i++ {
			minNext := chunks[i-1].OrigIndex + len(chunks[i-1].DelLines)
			if chunks[i].OrigIndex < minNext {
				t.Fatalf("chunk %d orig_index %d < %d", i, chunks[i].OrigIndex, minNext)
			}
		}

		if _, err := PatchToCommit(p, files); err != nil {
			t.Fatalf("PatchToCommit should not reject non-overlapping chunks: %v", err)
		}
	})
}

// TestPropertyCRToleranceEquivalence is property 6: applying a patch is
// equivalent to applying it with every trailing \r stripped.
func TestPropertyCRToleranceEquivalence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.StringMatching(`[a-zA-Z]{1,8}`).Draw(t, "a")
		b := rapid.StringMatching(`[a-zA-Z]{1,8}`).Draw(t, "b")

		plain := "*** Begin Patch\n*** Update File: f.ts\n-" + a + "\n+" + b + "\n" + "*** End Patch"

		files := map[string]string{"f.ts": a + "\n"}
		withCR := strings.ReplaceAll(plain, "\n", "\r\n")

		out1, err1 := ProcessPatch(plain, files)
		out2, err2 := ProcessPatch(withCR, files)
		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("CR-stripped and CR-laden patches diverged on success: %v vs %v", err1, err2)
		}
		if err1 == nil {
			for k, v := range out1 {
				if out2[k] != v {
					t.Fatalf("output for %q diverged: %q vs %q", k, v, out2[k])
				}
			}
		}
	})
}

// TestPropertyNeverPartialOutput is property 1: process_patch either
// succeeds or fails with a *DiffError; it never returns a non-nil map
// alongside a non-nil error.
func TestPropertyNeverPartialOutput(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[\*a-zA-Z0-9 \n+-]{0,80}`).Draw(t, "text")
		out, err := ProcessPatch(text, map[string]string{"f.ts": "x\n"})
		if err != nil && out != nil {
			t.Fatalf("got both a non-nil map and an error: %v, %v", out, err)
		}
		if err != nil {
			if _, ok := err.(*DiffError); !ok {
				t.Fatalf("error %v is not a *DiffError", err)
			}
		}
	})
}
