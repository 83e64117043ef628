package main

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/scene"
)

// view maps the ground plane to screen pixels, x to the right and z down.
type view struct {
	minX, minZ float64
	scale      float64
}

func (v view) toScreen(p mgl64.Vec3) (float32, float32) {
	return float32((p.X() - v.minX) * v.scale), float32((p.Z() - v.minZ) * v.scale)
}

func (v view) toWorld(sx, sy float64) mgl64.Vec3 {
	return mgl64.Vec3{sx/v.scale + v.minX, 0, sy/v.scale + v.minZ}
}

func (v view) px(d float64) float32 { return float32(d * v.scale) }

func (v view) line(dst *ebiten.Image, a, b mgl64.Vec3, width float32, clr color.Color) {
	x0, y0 := v.toScreen(a)
	x1, y1 := v.toScreen(b)
	vector.StrokeLine(dst, x0, y0, x1, y1, width, clr, true)
}

func (v view) drawScene(dst *ebiten.Image, s *scene.Scene) {
	dst.Fill(colornames.Darkslategray)

	for _, ob := range s.Obstacles {
		hw, hd := ob.HalfExtents()
		x, y := v.toScreen(ob.Position().Sub(mgl64.Vec3{hw, 0, hd}))
		vector.FillRect(dst, x, y, v.px(2*hw), v.px(2*hd), colornames.Dimgray, false)
	}
	for _, p := range s.Pickups {
		x, y := v.toScreen(p.Position())
		vector.FillCircle(dst, x, y, v.px(p.Radius()), colornames.Gold, true)
	}

	g := s.Guard
	n := g.WaypointCount()
	for i := 0; i < n; i++ {
		wp := g.Waypoint(i)
		v.line(dst, wp, g.Waypoint((i+1)%n), 1, colornames.Lightslategray)
		x, y := v.toScreen(wp)
		clr := colornames.Lightgrey
		if i == g.WaypointIndex() {
			clr = colornames.White
		}
		vector.StrokeCircle(dst, x, y, v.px(0.3), 2, clr, true)
	}

	pos := s.Nav.Position()
	prev := pos
	for _, p := range s.Nav.Path() {
		v.line(dst, prev, p, 1, colornames.Yellowgreen)
		prev = p
	}

	cfg := g.Config()
	axis := g.SightAxis()
	half := cfg.ViewAngle / 2
	cone := colornames.Khaki
	if g.InRange() {
		cone = colornames.Orangered
	}
	for _, deg := range []float64{-half, half} {
		edge := common.Yaw(deg).Rotate(axis).Mul(cfg.ViewRadius)
		v.line(dst, pos, pos.Add(edge), 1, cone)
	}
	v.line(dst, pos, pos.Add(axis.Mul(cfg.ViewRadius)), 1, colornames.Darkkhaki)

	gx, gy := v.toScreen(pos)
	if s.Trigger > 0 {
		vector.StrokeCircle(dst, gx, gy, v.px(s.Trigger), 1, colornames.Lightsteelblue, true)
	}
	if lk, ok := g.LastKnown(); ok {
		x, y := v.toScreen(lk)
		vector.StrokeCircle(dst, x, y, v.px(0.4), 2, colornames.Orange, true)
	}
	vector.FillCircle(dst, gx, gy, v.px(s.GuardBody.Radius()), s.Visual.Color(), true)
	v.line(dst, pos, pos.Add(g.Rotation().Rotate(common.Forward).Mul(s.GuardBody.Radius())), 2, colornames.Black)

	px, py := v.toScreen(s.Player.Position())
	vector.FillCircle(dst, px, py, v.px(s.Player.Body().Radius()), colornames.Deepskyblue, true)
}

func (g *Game) drawHUD(dst *ebiten.Image) {
	ebitenutil.DebugPrint(dst, g.status())
}
