package sim

// Collision constants
const (
	ParticleRestitution = 0.75
	// Stand-in distance for coincident centers
	NominalDistance = 0.1
)

// Resolve separates two overlapping particles and, when they approach each
// other, exchanges an impulse along the line between their centers. Position
// correction is split evenly regardless of mass.
// Returns true when the circles overlapped.
func Resolve(a, b *Particle) bool {
	delta := a.Position.Sub(b.Position)
	distance := delta.Length()
	if distance == 0 {
		distance = NominalDistance
	}

	sumRadii := a.radius + b.radius
	if distance >= sumRadii {
		return false
	}

	overlap := sumRadii - distance
	normal := delta.Scale(1 / distance)
	push := normal.Scale(overlap / 2)
	a.Position = a.Position.Add(push)
	b.Position = b.Position.Sub(push)

	dot := a.Velocity.Sub(b.Velocity).Dot(normal)
	if dot < 0 {
		impulse := -(1 + ParticleRestitution) * dot
		impulse /= 1/a.mass + 1/b.mass

		iv := normal.Scale(impulse)
		a.Velocity = a.Velocity.Add(iv.Scale(1 / a.mass))
		b.Velocity = b.Velocity.Sub(iv.Scale(1 / b.mass))
	}
	return true
}
