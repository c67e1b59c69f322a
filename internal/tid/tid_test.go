package tid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crystalline/biscuitidx/internal/tid"
)

func Test_TID_LessOrdersByBlockThenOffset(t *testing.T) {
	t.Parallel()

	require.True(t, tid.TID{Block: 1, Offset: 5}.Less(tid.TID{Block: 2, Offset: 0}))
	require.True(t, tid.TID{Block: 1, Offset: 5}.Less(tid.TID{Block: 1, Offset: 6}))
	require.False(t, tid.TID{Block: 1, Offset: 5}.Less(tid.TID{Block: 1, Offset: 5}))
	require.False(t, tid.TID{Block: 2, Offset: 0}.Less(tid.TID{Block: 1, Offset: 5}))
}

func Test_Sort_OrdersAscendingByBlockThenOffset(t *testing.T) {
	t.Parallel()

	ids := []tid.TID{
		{Block: 2, Offset: 1},
		{Block: 1, Offset: 9},
		{Block: 1, Offset: 2},
		{Block: 2, Offset: 0},
	}
	tid.Sort(ids)

	require.Equal(t, []tid.TID{
		{Block: 1, Offset: 2},
		{Block: 1, Offset: 9},
		{Block: 2, Offset: 0},
		{Block: 2, Offset: 1},
	}, ids)
}
