// Package render shows a session in an ebiten window.
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/npillmayer/arithm"
	"github.com/npillmayer/schuko/tracing"

	"roller-coaster/internal/physics"
	"roller-coaster/internal/scene"
	"roller-coaster/internal/session"
)

// tracer writes to trace with key 'coaster.render'
func tracer() tracing.Trace {
	return tracing.Select("coaster.render")
}

var (
	ColorClear = color.RGBA{217, 217, 217, 255} // 0.85 gray
	ColorHUD   = color.RGBA{0, 0, 0, 160}
)

type Game struct {
	Session *session.Session
	Width   int
	Height  int
	TPS     int

	ticks int // updates since the current run started
}

// NewGame wraps a session for display in a width x height window.
func NewGame(s *session.Session, width, height, tps int) *Game {
	return &Game{Session: s, Width: width, Height: height, TPS: tps}
}

// Update advances the session one frame. Elapsed time is derived from the
// tick count so playback does not depend on the wall clock.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	in := physics.Input{
		Elapsed:       float64(g.ticks) / float64(g.TPS),
		JumpRequested: inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
	g.ticks++
	f := g.Session.Advance(in)
	if f.Mode != physics.GameOver {
		return nil
	}
	if g.Session.Autopilot() {
		g.Session.Restart()
		g.ticks = 0
		return nil
	}
	tracer().P("session", g.Session.ID).Infof("leaving after game over")
	return ebiten.Termination
}

// toScreen maps world coordinates in [-1,1]² to pixels.
func (g *Game) toScreen(p arithm.Pair) (float32, float32) {
	x := (p.X() + 1) / 2 * float64(g.Width)
	y := (1 - p.Y()) / 2 * float64(g.Height)
	return float32(x), float32(y)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorClear)

	if c := g.Session.Scene(); c != nil {
		for _, poly := range c.Polygons() {
			g.fillPolygon(screen, poly)
		}
	}

	f := g.Session.Frame()
	vector.FillRect(screen, 0, 0, 150, 80, ColorHUD, true)
	msg := fmt.Sprintf("Mode:  %s\nIndex: %d/%d\nTilt:  %.2f\n", f.Mode, f.Index, g.Session.Ride().Last(), f.Theta)
	if g.Session.Autopilot() {
		msg += fmt.Sprintf("Run:   %d\n%s", g.Session.Runs(), g.Session.Pilot().DebugInfoStr())
	} else {
		msg += "SPACE = jump\nESC = quit"
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) fillPolygon(screen *ebiten.Image, poly scene.Polygon) {
	if len(poly.Points) < 3 {
		return
	}
	var path vector.Path
	for i, p := range poly.Points {
		sx, sy := g.toScreen(p)
		if i == 0 {
			path.MoveTo(sx, sy)
		} else {
			path.LineTo(sx, sy)
		}
	}
	path.Close()

	var cs ebiten.ColorScale
	cs.ScaleWithColor(poly.Color)
	vector.FillPath(screen, &path, nil, &vector.DrawPathOptions{
		AntiAlias:  true,
		ColorScale: cs,
	})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.Width, g.Height
}
