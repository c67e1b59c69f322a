package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crystalline/biscuitidx/internal/pattern"
)

func Test_Parse_EmptyPatternHasNoSegmentsAndNoPercent(t *testing.T) {
	t.Parallel()

	p := pattern.Parse("")
	require.Empty(t, p.Segments)
	require.False(t, p.StartsAny)
	require.False(t, p.EndsAny)
	require.False(t, p.HasPercent)
	require.Equal(t, 0, p.MinLen)
}

func Test_Parse_AllPercentCollapsesToNoSegmentsButHasPercent(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"%", "%%", "%%%"} {
		p := pattern.Parse(s)
		require.Empty(t, p.Segments, "pattern %q", s)
		require.True(t, p.StartsAny, "pattern %q", s)
		require.True(t, p.EndsAny, "pattern %q", s)
		require.True(t, p.HasPercent, "pattern %q", s)
	}
}

func Test_Parse_ExactPatternHasNoBoundaryFlags(t *testing.T) {
	t.Parallel()

	p := pattern.Parse("admin")
	require.Len(t, p.Segments, 1)
	require.False(t, p.StartsAny)
	require.False(t, p.EndsAny)
	require.Equal(t, 5, p.Segments[0].Len())
	require.Equal(t, 5, p.MinLen)
}

func Test_Parse_PrefixSuffixAndContains(t *testing.T) {
	t.Parallel()

	prefix := pattern.Parse("admin%")
	require.False(t, prefix.StartsAny)
	require.True(t, prefix.EndsAny)

	suffix := pattern.Parse("%admin")
	require.True(t, suffix.StartsAny)
	require.False(t, suffix.EndsAny)

	contains := pattern.Parse("%admin%")
	require.True(t, contains.StartsAny)
	require.True(t, contains.EndsAny)
	require.Len(t, contains.Segments, 1)
}

func Test_Parse_MultipleSegmentsDropsEmptyRuns(t *testing.T) {
	t.Parallel()

	p := pattern.Parse("%a%%b%")
	require.Len(t, p.Segments, 2)
	require.Equal(t, 1, p.Segments[0].Len())
	require.Equal(t, 1, p.Segments[1].Len())
	require.Equal(t, 2, p.MinLen)
}

func Test_Parse_UnderscoreIsWildcardWithinASegment(t *testing.T) {
	t.Parallel()

	p := pattern.Parse("user_1%3")
	require.Len(t, p.Segments, 2)
	require.Equal(t, 6, p.Segments[0].Len())
	require.Equal(t, 1, p.Segments[1].Len())
}
