package pace

import (
	"log"
	"math/rand"
	"time"

	"github.com/aiocean/confluence-doc-extractor/models"
)

// Pacer spaces requests out with randomized delays and shuffles the page
// processing order, so the traffic does not look like a strictly
// sequential id sweep. The random source is seedable for deterministic
// tests; nothing here is cryptographic.
type Pacer struct {
	rng *rand.Rand
}

func New(seed int64) *Pacer {
	return &Pacer{rng: rand.New(rand.NewSource(seed))}
}

// Delay blocks for a duration drawn uniformly from [min, max) and returns
// the duration slept. Non-positive bounds sleep not at all.
func (p *Pacer) Delay(min, max time.Duration) time.Duration {
	d := min
	if max > min {
		d = min + time.Duration(p.rng.Int63n(int64(max-min)))
	}
	if d <= 0 {
		return 0
	}
	log.Printf("Waiting %.2f seconds...", d.Seconds())
	time.Sleep(d)
	return d
}

// Shuffle permutes the stubs in place.
func (p *Pacer) Shuffle(stubs []models.PageStub) {
	p.rng.Shuffle(len(stubs), func(i, j int) {
		stubs[i], stubs[j] = stubs[j], stubs[i]
	})
}
