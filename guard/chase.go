package guard

import (
	"time"

	"github.com/milk9111/patrolai/common"
)

func (a *Agent) chase(dt time.Duration) {
	if a.state.Phase == PhaseCaught {
		a.halt()
		a.wait -= dt
		if a.wait <= 0 {
			a.resumePursuit()
		}
		return
	}

	pos := a.nav.Position()
	target := a.detection.Position
	if t := a.detection.Target; t != nil {
		target = t.Position()
	}
	if common.Distance(pos, target) >= a.cfg.DisengageDistance {
		a.enterPatrol(ReasonDisengage)
		return
	}

	a.move(a.cfg.RunSpeed)
	if a.visual != nil && a.cfg.ChaseMaterial != "" && a.visual.Material() != a.cfg.ChaseMaterial {
		a.visual.SetMaterial(a.cfg.ChaseMaterial)
	}
	a.nav.SetDestination(common.AtHeight(target, pos.Y()))
}
