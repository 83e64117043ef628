package guard

import (
	"time"

	"github.com/milk9111/patrolai/common"
)

func (a *Agent) patrol(dt time.Duration) {
	if a.state.Phase == PhaseInvestigating {
		a.investigate(dt)
		return
	}
	a.walkRoute(dt)
}

// walkRoute heads for the current waypoint, waits there, then moves on.
func (a *Agent) walkRoute(dt time.Duration) {
	a.nav.SetDestination(a.route.Current())
	if !a.arrived() {
		return
	}
	if a.wait <= 0 {
		a.nav.SetDestination(a.route.Advance())
		a.move(a.cfg.WalkSpeed)
		a.wait = a.cfg.WaitTime
		a.resumeRoute(ReasonWaitExpired)
		return
	}
	a.halt()
	a.wait -= dt
	a.beginWait()
}

// investigate walks to the last reported player position, looks around for
// one wait period, then returns to the current waypoint without advancing.
func (a *Agent) investigate(dt time.Duration) {
	pos := a.nav.Position()
	a.nav.SetDestination(common.AtHeight(a.lastKnown, pos.Y()))
	if common.PlanarDistance(pos, a.lastKnown) > a.cfg.InvestigateArriveDistance {
		a.move(a.cfg.WalkSpeed)
		return
	}
	if a.wait <= 0 {
		a.clearLastKnown()
		a.wait = a.cfg.WaitTime
		a.move(a.cfg.WalkSpeed)
		a.nav.SetDestination(a.route.Current())
		a.resumeRoute(ReasonWaitExpired)
		return
	}
	a.halt()
	a.wait -= dt
}
