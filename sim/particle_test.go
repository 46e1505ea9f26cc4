package sim

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func newTestParticle(t *testing.T, radius float64, pos, vel Vec2, gravity float64) *Particle {
	t.Helper()
	p, err := NewParticle(radius, pos, vel, gravity, 800, 600, color.RGBA{R: 255, A: 255})
	require.NoError(t, err)
	return p
}

func TestNewParticleRejectsBadInput(t *testing.T) {
	cases := []struct {
		name                  string
		radius, width, height float64
	}{
		{"zero radius", 0, 800, 600},
		{"negative radius", -3, 800, 600},
		{"zero width", 4, 0, 600},
		{"negative height", 4, 800, -1},
	}
	for _, c := range cases {
		_, err := NewParticle(c.radius, Vec2{}, Vec2{}, 9.8, c.width, c.height, color.RGBA{})
		assert.Error(t, err, c.name)
		assert.True(t, errors.Is(err, ErrConstruction), c.name)
	}
}

func TestMassIsInverseRadius(t *testing.T) {
	small := newTestParticle(t, 2, Vec2{X: 100, Y: 100}, Vec2{}, 0)
	big := newTestParticle(t, 8, Vec2{X: 200, Y: 100}, Vec2{}, 0)

	assert.Equal(t, 0.5, small.Mass())
	assert.Equal(t, 0.125, big.Mass())
	assert.Greater(t, small.Mass(), big.Mass(), "smaller particles are heavier")
	assert.Equal(t, Inactive, small.State())
}

func TestIntegrateAppliesGravityAndDamping(t *testing.T) {
	p := newTestParticle(t, 5, Vec2{X: 400, Y: 300}, Vec2{X: 2, Y: 0}, 10)
	p.Integrate(0.1)

	assert.InDelta(t, 1.0, p.Velocity.Y, eps)
	assert.InDelta(t, 2*HorizontalDamping, p.Velocity.X, eps)
	assert.InDelta(t, 400+2*HorizontalDamping, p.Position.X, eps)
	assert.InDelta(t, 301.0, p.Position.Y, eps)
}

func TestIntegrateKeepsZeroHorizontalVelocity(t *testing.T) {
	p := newTestParticle(t, 5, Vec2{X: 400, Y: 100}, Vec2{}, 10)
	for i := 0; i < 20; i++ {
		p.Integrate(0.016)
	}
	assert.Equal(t, 0.0, p.Velocity.X)
	assert.Equal(t, 400.0, p.Position.X)
}

func TestHorizontalDampingIsAsymptotic(t *testing.T) {
	p := newTestParticle(t, 5, Vec2{X: 400, Y: 300}, Vec2{X: 1e-3}, 0)
	for i := 0; i < 1000; i++ {
		p.Velocity.Y = 0
		p.Position = Vec2{X: 400, Y: 300}
		p.Integrate(0.016)
	}
	assert.Greater(t, p.Velocity.X, 0.0)
	assert.Less(t, p.Velocity.X, 1e-3)
}

func TestReflectAtBottomBorder(t *testing.T) {
	const (
		radius  = 5.0
		gravity = 9.8
		dt      = 0.02
		v       = 3.0
	)
	p := newTestParticle(t, radius, Vec2{X: 400, Y: 600 - radius + 0.5}, Vec2{Y: v}, gravity)

	p.Velocity.Y += gravity * dt
	p.ReflectAtBorder()
	assert.Equal(t, 600-radius, p.Position.Y)
	assert.InDelta(t, -WallRestitution*(v+gravity*dt), p.Velocity.Y, eps)

	q := newTestParticle(t, radius, Vec2{X: 400, Y: 600 - radius + 0.5}, Vec2{Y: v}, gravity)
	q.Integrate(dt)
	assert.InDelta(t, -WallRestitution*(v+gravity*dt), q.Velocity.Y, eps)
	assert.InDelta(t, 600-radius+q.Velocity.Y, q.Position.Y, eps, "clamped, then advanced")
}

func TestParticleOnBottomEdgeIsNotReflected(t *testing.T) {
	// Touching the edge is not crossing it: the check is strict.
	const (
		radius  = 5.0
		gravity = 9.8
		dt      = 0.02
		v       = 3.0
	)
	p := newTestParticle(t, radius, Vec2{X: 400, Y: 600 - radius}, Vec2{Y: v}, gravity)
	p.ReflectAtBorder()
	assert.Equal(t, 600-radius, p.Position.Y)
	assert.Equal(t, v, p.Velocity.Y)

	p.Integrate(dt)
	assert.InDelta(t, v+gravity*dt, p.Velocity.Y, eps)
	assert.InDelta(t, 600-radius+v+gravity*dt, p.Position.Y, eps, "moves past the edge")

	// Caught on the next frame
	p.Integrate(dt)
	assert.Less(t, p.Velocity.Y, 0.0)
}

func TestReflectEachBorder(t *testing.T) {
	cases := []struct {
		name    string
		pos     Vec2
		vel     Vec2
		wantPos Vec2
		wantVel Vec2
	}{
		{"top", Vec2{X: 400, Y: 2}, Vec2{X: 1, Y: -4}, Vec2{X: 400, Y: 5}, Vec2{X: 1, Y: 3.6}},
		{"right", Vec2{X: 798, Y: 300}, Vec2{X: 4, Y: 1}, Vec2{X: 795, Y: 300}, Vec2{X: -3.6, Y: 1}},
		{"left", Vec2{X: 1, Y: 300}, Vec2{X: -2, Y: 1}, Vec2{X: 5, Y: 300}, Vec2{X: 1.8, Y: 1}},
		{"inside", Vec2{X: 400, Y: 300}, Vec2{X: 1, Y: 1}, Vec2{X: 400, Y: 300}, Vec2{X: 1, Y: 1}},
	}
	for _, c := range cases {
		p := newTestParticle(t, 5, c.pos, c.vel, 0)
		p.ReflectAtBorder()
		assert.InDelta(t, c.wantPos.X, p.Position.X, eps, c.name)
		assert.InDelta(t, c.wantPos.Y, p.Position.Y, eps, c.name)
		assert.InDelta(t, c.wantVel.X, p.Velocity.X, eps, c.name)
		assert.InDelta(t, c.wantVel.Y, p.Velocity.Y, eps, c.name)
	}
}

func TestReflectCornerOneBorderPerCall(t *testing.T) {
	// Past both the bottom and the right border
	p := newTestParticle(t, 5, Vec2{X: 799, Y: 599}, Vec2{X: 2, Y: 2}, 0)

	p.ReflectAtBorder()
	assert.Equal(t, 595.0, p.Position.Y)
	assert.Equal(t, 799.0, p.Position.X, "right border waits for the next call")
	assert.InDelta(t, 2.0, p.Velocity.X, eps)

	p.ReflectAtBorder()
	assert.Equal(t, 795.0, p.Position.X)
	assert.InDelta(t, -1.8, p.Velocity.X, eps)
}
