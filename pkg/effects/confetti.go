// Package effects produces the confetti burst fired when a weekday is done.
package effects

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

// Burst shape.
const (
	ParticleCount = 50
	MaxDelay      = 3 * time.Second
	Lifetime      = 3 * time.Second
)

// Particle is one confetti piece.
type Particle struct {
	Left  float64       `json:"left"` // percent of the viewport width, [0,100)
	Delay time.Duration `json:"delay"`
	Hue   float64       `json:"hue"`
}

// Color renders the particle color as a CSS hsl() value.
func (p Particle) Color() string {
	return fmt.Sprintf("hsl(%.0f, 70%%, 60%%)", p.Hue)
}

// Burst is a transient set of particles for one completed day. Particles
// are discarded once Expires has passed.
type Burst struct {
	Day       string     `json:"day"`
	Particles []Particle `json:"particles"`
	Expires   time.Time  `json:"expires"`
}

// NewBurst generates ParticleCount particles using rnd.
func NewBurst(day string, now time.Time, rnd *rand.Rand) Burst {
	particles := make([]Particle, ParticleCount)
	for i := range particles {
		particles[i] = Particle{
			Left:  rnd.Float64() * 100,
			Delay: time.Duration(rnd.Int64N(int64(MaxDelay))),
			Hue:   rnd.Float64() * 360,
		}
	}
	return Burst{Day: day, Particles: particles, Expires: now.Add(Lifetime)}
}

// Confetti turns completed days into bursts delivered to a sink.
type Confetti struct {
	sink   func(Burst)
	now    func() time.Time
	logger *slog.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option configures Confetti.
type Option func(*Confetti)

// WithSeed makes bursts reproducible.
func WithSeed(seed uint64) Option {
	return func(c *Confetti) {
		c.rnd = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Confetti) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Confetti) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewConfetti returns a Confetti delivering bursts to sink. A nil sink
// only logs.
func NewConfetti(sink func(Burst), opts ...Option) *Confetti {
	c := &Confetti{
		sink:   sink,
		now:    time.Now,
		logger: slog.Default(),
		rnd:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Celebrate fires a burst for day.
func (c *Confetti) Celebrate(day string) {
	c.mu.Lock()
	burst := NewBurst(day, c.now(), c.rnd)
	c.mu.Unlock()

	c.logger.Debug("confetti", "day", day, "particles", len(burst.Particles))
	if c.sink != nil {
		c.sink(burst)
	}
}
