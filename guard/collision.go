package guard

import "go.uber.org/zap"

const resumeAction = "resume-navigation"

func blocksMovement(tag Tag) bool {
	return tag == TagPlayer || tag == TagPickup
}

// OnContactBegin suspends navigation when the agent bumps into a player or a
// pickup. Touching the player during pursuit counts as a catch. A new contact
// while a resume is pending cancels the resume.
func (a *Agent) OnContactBegin(tag Tag) {
	if a == nil || !blocksMovement(tag) {
		return
	}
	if tag == TagPlayer {
		a.markCaught()
	}
	if a.colliding {
		if a.deferred.cancel(resumeAction) {
			a.logger.Debug("guard resume cancelled", zap.String("tag", string(tag)))
		}
		return
	}
	a.colliding = true
	a.nav.Stop()
}

// OnContactEnd schedules navigation to resume after Config.ResumeDelay.
func (a *Agent) OnContactEnd(tag Tag) {
	if a == nil || !blocksMovement(tag) {
		return
	}
	if !a.colliding || a.deferred.pending(resumeAction) {
		return
	}
	a.deferred.schedule(resumeAction, a.now+a.cfg.ResumeDelay, a.resumeNavigation)
}

func (a *Agent) resumeNavigation() {
	a.colliding = false
	a.nav.Resume()
}

// ResumePending reports whether a collision resume is scheduled.
func (a *Agent) ResumePending() bool { return a.deferred.pending(resumeAction) }
