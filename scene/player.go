package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/patrolai/physics"
)

// Player moves the player body each tick, from a manual position when one is
// set, otherwise from its script.
type Player struct {
	body   *physics.Body
	script *PlayerScript
	clock  time.Duration
	manual *mgl64.Vec3
	failed bool
	logger *zap.Logger
}

func (p *Player) Update(dt time.Duration) {
	if p == nil || p.body == nil {
		return
	}
	p.clock += dt
	switch {
	case p.manual != nil:
		p.body.SetPosition(*p.manual)
	case p.script != nil && !p.failed:
		next, err := p.script.Next(p.clock, dt, p.body.Position())
		if err != nil {
			p.failed = true
			p.logger.Warn("player script stopped", zap.String("script", p.script.Name()), zap.Error(err))
			return
		}
		p.body.SetPosition(next)
	}
}

// SetManual pins the player to pos until ClearManual.
func (p *Player) SetManual(pos mgl64.Vec3) {
	p.manual = &pos
}

func (p *Player) ClearManual() { p.manual = nil }

func (p *Player) Position() mgl64.Vec3 { return p.body.Position() }

func (p *Player) Body() *physics.Body { return p.body }
