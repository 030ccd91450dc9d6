package limit

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/time/rate"
)

// Limit keeps one token bucket per client.
type Limit struct {
	m    *sync.Map
	by   rate.Limit
	bust int
}

func New(by float64, bust int) *Limit {
	return &Limit{m: &sync.Map{}, by: rate.Limit(by), bust: bust}
}

// Allow reports whether client may make a request now.
func (l *Limit) Allow(client string) bool {
	id := xxhash.Sum64String(client)
	x, ok := l.m.Load(id)
	if !ok {
		x, _ = l.m.LoadOrStore(id, rate.NewLimiter(l.by, l.bust))
	}
	return x.(*rate.Limiter).Allow()
}
