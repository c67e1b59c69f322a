package bitmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crystalline/biscuitidx/internal/bitmap"
)

func Test_Bitmap_AddContainsRemove(t *testing.T) {
	t.Parallel()

	b := bitmap.New()
	require.True(t, b.IsEmpty())

	b.Add(3)
	b.Add(7)
	b.Add(3) // duplicate add is a no-op

	require.True(t, b.Contains(3))
	require.True(t, b.Contains(7))
	require.False(t, b.Contains(4))
	require.Equal(t, 2, b.Count())

	b.Remove(3)
	require.False(t, b.Contains(3))
	require.Equal(t, 1, b.Count())

	b.Remove(999) // removing an absent member is a no-op
	require.Equal(t, 1, b.Count())
}

func Test_Bitmap_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	b := bitmap.New()
	b.Add(1)
	b.Add(2)

	c := b.Clone()
	c.Add(3)

	require.False(t, b.Contains(3))
	require.True(t, c.Contains(3))
}

func Test_Bitmap_SetAlgebra(t *testing.T) {
	t.Parallel()

	a := bitmap.New()
	for _, x := range []uint32{1, 2, 3, 4} {
		a.Add(x)
	}
	b := bitmap.New()
	for _, x := range []uint32{3, 4, 5, 6} {
		b.Add(x)
	}

	and := a.Clone()
	and.AndInPlace(b)
	require.Equal(t, []uint32{3, 4}, and.ToSlice())

	or := a.Clone()
	or.OrInPlace(b)
	require.Equal(t, []uint32{1, 2, 3, 4, 5, 6}, or.ToSlice())

	andNot := a.Clone()
	andNot.AndNotInPlace(b)
	require.Equal(t, []uint32{1, 2}, andNot.ToSlice())
}

func Test_Bitmap_IterateAscendingAndStopsEarly(t *testing.T) {
	t.Parallel()

	b := bitmap.New()
	for _, x := range []uint32{40, 10, 30, 20} {
		b.Add(x)
	}

	var seen []uint32
	b.Iterate(func(x uint32) bool {
		seen = append(seen, x)
		return len(seen) < 2
	})

	require.Equal(t, []uint32{10, 20}, seen)
}

func Test_Bitmap_Equals(t *testing.T) {
	t.Parallel()

	a := bitmap.New()
	a.Add(1)
	a.Add(2)

	b := bitmap.New()
	b.Add(2)
	b.Add(1)

	require.True(t, a.Equals(b))

	b.Add(3)
	require.False(t, a.Equals(b))
}

func Test_Union_IgnoresNilArgumentsAndLeavesInputsUntouched(t *testing.T) {
	t.Parallel()

	a := bitmap.New()
	a.Add(1)
	b := bitmap.New()
	b.Add(2)

	u := bitmap.Union(a, nil, b)

	require.Equal(t, []uint32{1, 2}, u.ToSlice())
	require.Equal(t, []uint32{1}, a.ToSlice())
	require.Equal(t, []uint32{2}, b.ToSlice())
}
