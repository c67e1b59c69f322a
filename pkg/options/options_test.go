package options_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crystalline/biscuitidx/pkg/options"
)

func Test_NewDefaultOptions_MatchesDocumentedDefaults(t *testing.T) {
	t.Parallel()

	o := options.NewDefaultOptions()
	require.Equal(t, options.DefaultTombstoneCleanupThreshold, o.TombstoneCleanupThreshold)
	require.Equal(t, options.DefaultMaxRecordLength, o.MaxRecordLength)
	require.Equal(t, options.DefaultInitialSlotCapacity, o.InitialSlotCapacity)
	require.Nil(t, o.Logger)
}

func Test_WithMaxRecordLength_IgnoresOutOfRangeValues(t *testing.T) {
	t.Parallel()

	o := options.NewDefaultOptions()
	options.WithMaxRecordLength(0)(&o)
	require.Equal(t, options.DefaultMaxRecordLength, o.MaxRecordLength)

	options.WithMaxRecordLength(options.MaxAllowedRecordLength + 1)(&o)
	require.Equal(t, options.DefaultMaxRecordLength, o.MaxRecordLength)

	options.WithMaxRecordLength(128)(&o)
	require.Equal(t, 128, o.MaxRecordLength)
}

func Test_WithTombstoneCleanupThreshold_IgnoresNonPositiveValues(t *testing.T) {
	t.Parallel()

	o := options.NewDefaultOptions()
	options.WithTombstoneCleanupThreshold(-1)(&o)
	require.Equal(t, options.DefaultTombstoneCleanupThreshold, o.TombstoneCleanupThreshold)

	options.WithTombstoneCleanupThreshold(50)(&o)
	require.Equal(t, 50, o.TombstoneCleanupThreshold)
}

func Test_WithLogger_IgnoresNil(t *testing.T) {
	t.Parallel()

	o := options.NewDefaultOptions()
	options.WithLogger(nil)(&o)
	require.Nil(t, o.Logger)

	log := zap.NewNop().Sugar()
	options.WithLogger(log)(&o)
	require.Same(t, log, o.Logger)
}
