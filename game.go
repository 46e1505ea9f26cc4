package main

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/gravity-grid-go/sim"
)

// Game drives the simulation from the Ebitengine loop
type Game struct {
	sim           *sim.Simulation
	width, height int
	view          []sim.ParticleView
	last          time.Time // Time of the previous Update, dt is measured from it
	Paused        bool
	out           io.Writer // Receives the active count on exit
}

func NewGame(s *sim.Simulation, width, height int, out io.Writer) *Game {
	return &Game{
		sim:    s,
		width:  width,
		height: height,
		view:   s.View(),
		last:   time.Now(),
		out:    out,
	}
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.last).Seconds()
	g.last = now

	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		fmt.Fprintln(g.out, g.sim.ActiveCount())
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Paused = !g.Paused
	}
	if g.Paused {
		return nil
	}

	g.view = g.sim.AdvanceFrame(dt)
	return nil
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	for _, p := range g.view {
		vector.DrawFilledCircle(screen, float32(p.Position.X), float32(p.Position.Y), float32(p.Radius), p.Color, true)
	}

	st := g.sim.Stats()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("particles: %d/%d  contacts: %d  fps: %.0f",
		len(g.view), g.sim.Len(), st.Contacts, ebiten.ActualFPS()))
}

// Layout returns the screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
