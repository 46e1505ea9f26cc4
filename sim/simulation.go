// Package sim simulates circles under gravity with a uniform grid broad phase.
package sim

import (
	"fmt"
	"image/color"
)

// DefaultInterval is the time between two activations.
const DefaultInterval = 0.05

// activationSlack absorbs rounding in the activation timer, so frame times
// that add up to the interval on paper still trigger an activation.
const activationSlack = 1e-9

// BroadPhaseMode selects how candidate pairs are found.
type BroadPhaseMode uint8

const (
	// GridBroadPhase checks particles in the same or neighbouring cells
	GridBroadPhase BroadPhaseMode = iota
	// BruteForce checks every ordered pair of distinct active particles
	BruteForce
)

// Options describe the plane and the population.
type Options struct {
	Width, Height float64 // Window size
	MaxRadius     float64 // Largest spawn radius, fixes the cell size
	Gravity       float64
	Interval      float64 // Seconds between activations, 0 means DefaultInterval
	BroadPhase    BroadPhaseMode
}

// Descriptor is the spawn data for one particle.
type Descriptor struct {
	Radius   float64
	Position Vec2
	Velocity Vec2
	Color    color.RGBA
}

// ParticleView is what the renderer needs to draw a particle.
type ParticleView struct {
	Position Vec2
	Radius   float64
	Color    color.RGBA
}

// Stats about the last frame.
type Stats struct {
	Frames     int // Frames advanced so far
	Candidates int // Pairs handed to the narrow phase
	Contacts   int // Candidates that actually overlapped
}

// Simulation owns the particles and the grid. It is driven by one goroutine
// calling AdvanceFrame once per rendered frame.
type Simulation struct {
	opts      Options
	particles []Particle
	grid      *Grid

	cursor  int     // Particles with index <= cursor are active
	elapsed float64 // Time since the last activation
	stats   Stats
	view    []ParticleView
}

// New creates a simulation with one particle per descriptor. Particle 0 is
// active from the first frame; the others follow one per interval.
func New(opts Options, descs []Descriptor) (*Simulation, error) {
	if !(opts.Width > 0) || !(opts.Height > 0) {
		return nil, fmt.Errorf("window %gx%g must be positive: %w", opts.Width, opts.Height, ErrConstruction)
	}
	if opts.Interval == 0 {
		opts.Interval = DefaultInterval
	}
	if !(opts.Interval > 0) {
		return nil, fmt.Errorf("activation interval %g must be positive: %w", opts.Interval, ErrConstruction)
	}

	grid, err := NewGrid(opts.Width, opts.Height, opts.MaxRadius)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		opts:      opts,
		particles: make([]Particle, 0, len(descs)),
		grid:      grid,
		view:      make([]ParticleView, 0, len(descs)),
	}
	for i, d := range descs {
		if d.Radius > opts.MaxRadius {
			return nil, fmt.Errorf("particle %d radius %g exceeds max radius %g: %w",
				i, d.Radius, opts.MaxRadius, ErrConstruction)
		}
		p, err := NewParticle(d.Radius, d.Position, d.Velocity, opts.Gravity, opts.Width, opts.Height, d.Color)
		if err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
		s.particles = append(s.particles, *p)
	}
	s.activate()
	return s, nil
}

// AdvanceFrame runs one frame of dt seconds and returns the active particles.
// The broad phase works on the cells assigned during the previous frame, so
// collisions lag the true positions by one frame. The returned slice is reused
// by the next call.
func (s *Simulation) AdvanceFrame(dt float64) []ParticleView {
	s.elapsed += dt
	for s.elapsed >= s.opts.Interval-activationSlack {
		s.elapsed -= s.opts.Interval
		if s.cursor < len(s.particles) {
			s.cursor++
		}
	}
	s.activate()

	s.stats.Frames++
	s.stats.Candidates = 0
	s.stats.Contacts = 0
	switch s.opts.BroadPhase {
	case BruteForce:
		s.bruteForce(s.resolvePair)
	default:
		s.grid.BroadPhase(s.resolvePair)
	}

	for i := range s.particles {
		p := &s.particles[i]
		if p.state != Active {
			continue
		}
		s.grid.Reassign(i, p)
		p.Integrate(dt)
	}
	return s.View()
}

// activate flips every particle up to the cursor to Active.
func (s *Simulation) activate() {
	last := min(s.cursor, len(s.particles)-1)
	for i := last; i >= 0 && s.particles[i].state == Inactive; i-- {
		s.particles[i].state = Active
	}
}

func (s *Simulation) resolvePair(a, b int) {
	s.stats.Candidates++
	if Resolve(&s.particles[a], &s.particles[b]) {
		s.stats.Contacts++
	}
}

// bruteForce is the O(n²) predecessor of the grid broad phase.
func (s *Simulation) bruteForce(visit func(a, b int)) {
	for i := range s.particles {
		if s.particles[i].state != Active {
			continue
		}
		for j := range s.particles {
			if i == j || s.particles[j].state != Active {
				continue
			}
			visit(i, j)
		}
	}
}

// View returns the renderable state of the active particles.
func (s *Simulation) View() []ParticleView {
	s.view = s.view[:0]
	for i := range s.particles {
		p := &s.particles[i]
		if p.state != Active {
			continue
		}
		s.view = append(s.view, ParticleView{Position: p.Position, Radius: p.radius, Color: p.Color})
	}
	return s.view
}

// ActiveCount returns the activation cursor.
func (s *Simulation) ActiveCount() int { return s.cursor }

// Len returns the total number of particles, active or not.
func (s *Simulation) Len() int { return len(s.particles) }

// Particle returns a copy of particle i.
func (s *Simulation) Particle(i int) Particle { return s.particles[i] }

// Grid gives read access to the cells; mutate only through AdvanceFrame.
func (s *Simulation) Grid() *Grid { return s.grid }

// CellSize returns the grid cell side.
func (s *Simulation) CellSize() float64 { return s.grid.cellSize }

// Stats returns counters of the last frame.
func (s *Simulation) Stats() Stats { return s.stats }
