package launch

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"

	"github.com/olivierh59500/gravity-grid-go/sim"
)

// Spawner noise parameters
const (
	noiseAlpha = 2.0
	noiseBeta  = 2.0
	noiseOcts  = 3
	hueStep    = 0.05 // Noise input step between consecutive particles
)

// Spawner produces the randomized particle descriptors of a run.
type Spawner struct {
	cfg   Config
	rng   *rand.Rand
	noise *perlin.Perlin
}

func NewSpawner(cfg Config) *Spawner {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Spawner{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOcts, seed),
	}
}

// Descriptors returns SpawnLimit particles, all starting at (2*maxR, 2*maxR)
// and drifting right at 0.5 to 1 units per frame. Hue wanders smoothly along
// the spawn order.
func (s *Spawner) Descriptors() []sim.Descriptor {
	start := sim.Vec2{X: s.cfg.MaxRadius * 2, Y: s.cfg.MaxRadius * 2}
	descs := make([]sim.Descriptor, s.cfg.SpawnLimit)
	for i := range descs {
		descs[i] = sim.Descriptor{
			Radius:   s.cfg.MinRadius + s.rng.Float64()*(s.cfg.MaxRadius-s.cfg.MinRadius),
			Position: start,
			Velocity: sim.Vec2{X: 0.5 + s.rng.Float64()*0.5},
			Color:    s.color(i),
		}
	}
	return descs
}

func (s *Spawner) color(i int) color.RGBA {
	h := (s.noise.Noise1D(float64(i)*hueStep) + 1) * 180
	r, g, b := hsvToRGB(h, 0.6+0.4*s.rng.Float64(), 0.7+0.3*s.rng.Float64())
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

// hsvToRGB helper
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
