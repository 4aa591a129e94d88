package deliveries

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TrackingGenerator issues fallback identifiers for deliveries the core API
// could not assign identifiers to. The clock and randomness are injectable
// for tests.
type TrackingGenerator struct {
	now  func() time.Time
	rand *rand.Rand
}

// NewTrackingGenerator constructs a generator on the wall clock.
func NewTrackingGenerator() *TrackingGenerator {
	return &TrackingGenerator{
		now:  time.Now,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewTrackingGeneratorAt pins the clock and seed, for tests.
func NewTrackingGeneratorAt(now func() time.Time, seed int64) *TrackingGenerator {
	return &TrackingGenerator{
		now:  now,
		rand: rand.New(rand.NewSource(seed)),
	}
}

// TrackingNumber returns an "ENV-<unix-ms>-<suffix>" identifier where suffix
// is six uppercase alphanumerics.
func (g *TrackingGenerator) TrackingNumber() string {
	var suffix strings.Builder
	for i := 0; i < 6; i++ {
		suffix.WriteByte(trackingAlphabet[g.rand.Intn(len(trackingAlphabet))])
	}
	return fmt.Sprintf("ENV-%d-%s", g.now().UnixMilli(), suffix.String())
}

// LocalID returns the "local_<unix-ms>" key used for records the core API
// never acknowledged.
func (g *TrackingGenerator) LocalID() string {
	return fmt.Sprintf("local_%d", g.now().UnixMilli())
}
