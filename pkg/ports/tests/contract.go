package tests

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RecorderContractTest is a reusable test suite that verifies if an adapter complies with ports.Recorder.
// The recorder must be empty when passed in.
func RecorderContractTest(t *testing.T, rec ports.Recorder) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	t.Run("Recent_Empty", func(t *testing.T) {
		lines, err := rec.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("Append_RoundTrip", func(t *testing.T) {
		o := domain.NewOutcome("Ada", "The Lost Cabin", "Safe Exit", base)
		require.NoError(t, rec.Append(ctx, o))

		lines, err := rec.Recent(ctx, 1)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, o.String(), lines[len(lines)-1])
	})

	t.Run("Recent_PreservesOrder", func(t *testing.T) {
		var want []string
		for i := 1; i <= 12; i++ {
			o := domain.NewOutcome(fmt.Sprintf("player-%02d", i), "Dragon Peak", "Dragon Rider", base.Add(time.Duration(i)*time.Minute))
			require.NoError(t, rec.Append(ctx, o))
			want = append(want, o.String())
		}

		lines, err := rec.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, want[len(want)-10:], lines)
	})

	t.Run("Recent_LimitLargerThanLog", func(t *testing.T) {
		lines, err := rec.Recent(ctx, 1000)
		require.NoError(t, err)
		// 1 from round trip + 12 from ordering.
		assert.Len(t, lines, 13)
	})

	t.Run("Recent_MaxIntLimit", func(t *testing.T) {
		lines, err := rec.Recent(ctx, math.MaxInt)
		require.NoError(t, err)
		assert.Len(t, lines, 13)
	})

	t.Run("Recent_NonPositiveLimit", func(t *testing.T) {
		lines, err := rec.Recent(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}
