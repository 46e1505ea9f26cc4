package sim

import (
	"fmt"
	"image/color"
)

// Integration constants
const (
	HorizontalDamping = 0.9999 // Applied to Velocity.X on every Integrate call
	WallRestitution   = 0.9    // Fraction of speed kept after bouncing off a border
)

// State tells whether a particle takes part in the simulation yet.
type State uint8

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// CellCoord addresses a cell of the Grid.
type CellCoord struct {
	X, Y int
}

// Particle: a circle under gravity, bouncing inside [0, width] x [0, height]
type Particle struct {
	Position Vec2
	Velocity Vec2
	Color    color.RGBA

	radius  float64
	mass    float64
	gravity float64
	width   float64
	height  float64
	state   State

	cell   CellCoord // Only meaningful while inCell is set
	inCell bool
}

// NewParticle creates an inactive particle. Mass is 1/radius, so smaller
// particles are heavier.
func NewParticle(radius float64, position, velocity Vec2, gravity, width, height float64, col color.RGBA) (*Particle, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("particle radius %g must be positive: %w", radius, ErrConstruction)
	}
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("particle bounds %gx%g must be positive: %w", width, height, ErrConstruction)
	}
	return &Particle{
		Position: position,
		Velocity: velocity,
		Color:    col,
		radius:   radius,
		mass:     1 / radius,
		gravity:  gravity,
		width:    width,
		height:   height,
	}, nil
}

// Radius is fixed at creation.
func (p Particle) Radius() float64 { return p.radius }

// Mass is 1/Radius.
func (p Particle) Mass() float64 { return p.mass }

func (p Particle) State() State { return p.state }

// Cell returns the cell the particle is registered in, if any.
func (p Particle) Cell() (CellCoord, bool) {
	return p.cell, p.inCell
}

// Integrate applies gravity and horizontal damping, reflects at the borders and
// then moves the particle by its velocity. Velocity is in units per frame, dt
// only scales gravity.
func (p *Particle) Integrate(dt float64) {
	p.Velocity.Y += p.gravity * dt
	if p.Velocity.X != 0 {
		p.Velocity.X *= HorizontalDamping
	}

	p.ReflectAtBorder()
	p.Position = p.Position.Add(p.Velocity)
}

// ReflectAtBorder handles at most one border per call, checked bottom, top,
// right, left. A particle past two borders gets the second one on a later frame.
func (p *Particle) ReflectAtBorder() {
	r := p.radius
	switch {
	case p.Position.Y+r > p.height:
		p.Position.Y = p.height - r
		p.Velocity.Y *= -WallRestitution
	case p.Position.Y-r < 0:
		p.Position.Y = r
		p.Velocity.Y *= -WallRestitution
	case p.Position.X+r > p.width:
		p.Position.X = p.width - r
		p.Velocity.X *= -WallRestitution
	case p.Position.X-r < 0:
		p.Position.X = r
		p.Velocity.X *= -WallRestitution
	}
}
