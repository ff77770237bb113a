package pace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aiocean/confluence-doc-extractor/models"
)

func pages(ids ...string) []models.PageStub {
	stubs := make([]models.PageStub, len(ids))
	for i, id := range ids {
		stubs[i] = models.PageStub{ID: id}
	}
	return stubs
}

func TestShuffleIsSeedable(t *testing.T) {
	first := pages("1", "2", "3", "4", "5", "6", "7", "8")
	second := pages("1", "2", "3", "4", "5", "6", "7", "8")

	New(7).Shuffle(first)
	New(7).Shuffle(second)

	assert.Equal(t, first, second)
}

func TestShufflePreservesElements(t *testing.T) {
	stubs := pages("1", "2", "3", "4", "5")
	New(42).Shuffle(stubs)

	assert.Len(t, stubs, 5)
	seen := map[string]bool{}
	for _, stub := range stubs {
		seen[stub.ID] = true
	}
	assert.Len(t, seen, 5)
}

func TestDelayWithinBounds(t *testing.T) {
	p := New(1)
	min, max := time.Millisecond, 5*time.Millisecond

	for i := 0; i < 10; i++ {
		d := p.Delay(min, max)
		assert.GreaterOrEqual(t, d, min)
		assert.Less(t, d, max)
	}
}

func TestDelayZeroBoundsSkipsSleep(t *testing.T) {
	p := New(1)

	start := time.Now()
	d := p.Delay(0, 0)
	assert.Zero(t, d)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
