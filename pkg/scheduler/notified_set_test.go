package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotifiedSetClaim(t *testing.T) {
	set := newNotifiedSet(1000)
	now := time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)

	assert.True(t, set.Claim("ana", "ev-1", now))
	assert.False(t, set.Claim("ana", "ev-1", now), "second claim for the same pair must fail")

	t.Run("pairs are scoped per user and per event", func(t *testing.T) {
		assert.True(t, set.Claim("luis", "ev-1", now))
		assert.True(t, set.Claim("ana", "ev-2", now))
	})

	assert.Equal(t, 3, set.Len())
}

func TestNotifiedSetRelease(t *testing.T) {
	set := newNotifiedSet(1000)
	now := time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)

	assert.True(t, set.Claim("ana", "ev-1", now))
	set.Release("ana", "ev-1")
	assert.True(t, set.Claim("ana", "ev-1", now), "released pair must be claimable again")

	// Releasing a pair that was never claimed is harmless.
	set.Release("luis", "ev-9")
	assert.Equal(t, 1, set.Len())
}

func TestNotifiedSetSweepDropsStaleEntries(t *testing.T) {
	set := newNotifiedSet(1000)
	base := time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)

	set.Claim("ana", "ev-old", base.Add(-time.Hour))
	set.Claim("ana", "ev-at-cutoff", base)
	set.Claim("ana", "ev-new", base.Add(time.Minute))

	removed := set.Sweep(base)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Claim("ana", "ev-old", base), "swept pair must be claimable again")
	assert.False(t, set.Claim("ana", "ev-at-cutoff", base))
}

func TestNotifiedSetSweepEvictsOldestAboveBound(t *testing.T) {
	set := newNotifiedSet(2)
	base := time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)

	set.Claim("ana", "ev-1", base)
	set.Claim("ana", "ev-2", base.Add(time.Minute))
	set.Claim("ana", "ev-3", base.Add(2*time.Minute))

	removed := set.Sweep(base.Add(-time.Hour))

	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Claim("ana", "ev-1", base), "oldest entry must be the one evicted")
	assert.False(t, set.Claim("ana", "ev-2", base))
	assert.False(t, set.Claim("ana", "ev-3", base))
}
