package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crystalline/biscuitidx/internal/lenindex"
	"github.com/crystalline/biscuitidx/internal/pattern"
	"github.com/crystalline/biscuitidx/internal/posindex"
)

// buildCorpus indexes a small fixture of (slot, string) pairs directly into
// a fresh forward/reverse/length index triple, bypassing the slot manager
// entirely — this package tests matching in isolation from lifecycle.
func buildCorpus(t *testing.T, records map[uint32]string) *pattern.Matcher {
	t.Helper()

	fwd := posindex.New()
	rev := posindex.New()
	lens := lenindex.New()

	for slot, s := range records {
		ln := len(s)
		for p := 0; p < ln; p++ {
			c := s[p]
			fwd.Add(c, int16(p), slot)
			rev.Add(c, int16(p-ln), slot)
		}
		lens.AddLength(slot, ln)
	}

	return pattern.NewMatcher(fwd, rev, lens)
}

func slots(bm interface{ ToSlice() []uint32 }) []uint32 {
	return bm.ToSlice()
}

func Test_Evaluate_ScenarioOne_AdminFamily(t *testing.T) {
	t.Parallel()

	m := buildCorpus(t, map[uint32]string{
		1: "admin",
		2: "administrator",
		3: "user_admin",
		4: "john",
	})

	cases := []struct {
		query string
		want  []uint32
	}{
		{"admin%", []uint32{1, 2}},
		{"%admin", []uint32{1, 3}},
		{"%admin%", []uint32{1, 2, 3}},
		{"admin", []uint32{1}},
	}
	for _, c := range cases {
		got := slots(m.Evaluate(pattern.Parse(c.query)))
		require.ElementsMatch(t, c.want, got, "pattern %q", c.query)
	}
}

func Test_Evaluate_ScenarioTwo_UnderscoreAnchoring(t *testing.T) {
	t.Parallel()

	m := buildCorpus(t, map[uint32]string{
		1: "user_123",
		2: "user_456",
		3: "user_789",
	})

	got := slots(m.Evaluate(pattern.Parse("user_1%3")))
	require.ElementsMatch(t, []uint32{1}, got)
}

func Test_Evaluate_ScenarioThree_EmptyStringBoundary(t *testing.T) {
	t.Parallel()

	m := buildCorpus(t, map[uint32]string{1: ""})

	require.ElementsMatch(t, []uint32{1}, slots(m.Evaluate(pattern.Parse(""))))
	require.ElementsMatch(t, []uint32{1}, slots(m.Evaluate(pattern.Parse("%"))))
	require.Empty(t, slots(m.Evaluate(pattern.Parse("_"))))
}

func Test_Evaluate_ScenarioFive_OrderedMultiWildcard(t *testing.T) {
	t.Parallel()

	m := buildCorpus(t, map[uint32]string{
		1: "xaybzc",  // a, then b, then c: matches
		2: "xaycbz",  // c before b: does not match
		3: "xybzc",   // no 'a' at all: does not match
		4: "aaabbbc", // a...b...c: matches
	})

	got := slots(m.Evaluate(pattern.Parse("%a%b%c%")))
	require.ElementsMatch(t, []uint32{1, 4}, got)
}

func Test_Evaluate_ScenarioSix_CaseSensitivity(t *testing.T) {
	t.Parallel()

	m := buildCorpus(t, map[uint32]string{1: "Admin"})

	require.Empty(t, slots(m.Evaluate(pattern.Parse("admin"))))
	require.ElementsMatch(t, []uint32{1}, slots(m.Evaluate(pattern.Parse("Admin"))))
}

func Test_Evaluate_MultiSegmentAnchorsFirstSegmentWhenNoLeadingPercent(t *testing.T) {
	t.Parallel()

	// "ab%cd" must not match a record where "ab" appears anywhere other
	// than position 0, even though "ab" does occur later in the string.
	m := buildCorpus(t, map[uint32]string{
		1: "abXXcd", // ab at position 0: matches
		2: "XXabcd", // ab not at position 0: must not match
	})

	got := slots(m.Evaluate(pattern.Parse("ab%cd")))
	require.ElementsMatch(t, []uint32{1}, got)
}
