package lenindex_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crystalline/biscuitidx/internal/lenindex"
)

func Test_Index_EqAndGeOnEmptyIndex(t *testing.T) {
	t.Parallel()

	ix := lenindex.New()
	require.True(t, ix.Eq(0).IsEmpty())
	require.True(t, ix.Ge(0).IsEmpty())
	require.True(t, ix.Ge(-5).IsEmpty())
}

func Test_Index_AddLengthPopulatesEqAndEveryGeUpToLength(t *testing.T) {
	t.Parallel()

	ix := lenindex.New()
	ix.AddLength(7, 3)

	require.True(t, ix.Eq(3).Contains(7))
	require.False(t, ix.Eq(2).Contains(7))
	require.False(t, ix.Eq(4).Contains(7))

	for k := 0; k <= 3; k++ {
		require.True(t, ix.Ge(k).Contains(7), "Ge(%d) should contain slot 7", k)
	}
	require.False(t, ix.Ge(4).Contains(7))
}

func Test_Index_GeBeyondMaxObservedIsEmpty(t *testing.T) {
	t.Parallel()

	ix := lenindex.New()
	ix.AddLength(1, 5)

	require.True(t, ix.Ge(100).IsEmpty())
	require.Equal(t, 5, ix.MaxObservedLength())
}

func Test_Index_MultipleLengthsCompose(t *testing.T) {
	t.Parallel()

	ix := lenindex.New()
	ix.AddLength(1, 3)
	ix.AddLength(2, 5)
	ix.AddLength(3, 5)

	require.ElementsMatch(t, []uint32{2, 3}, ix.Eq(5).ToSlice())
	require.ElementsMatch(t, []uint32{1, 2, 3}, ix.Ge(3).ToSlice())
	require.ElementsMatch(t, []uint32{2, 3}, ix.Ge(4).ToSlice())
}
