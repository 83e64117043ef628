package guard

import (
	"fmt"
	"time"
)

type Mode string

const (
	ModePatrol Mode = "patrol"
	ModeChase  Mode = "chase"
)

type Phase string

const (
	// Patrol phases.
	PhaseMoving        Phase = "moving"
	PhaseWaiting       Phase = "waiting"
	PhaseInvestigating Phase = "investigating"

	// Chase phases.
	PhasePursuing Phase = "pursuing"
	PhaseCaught   Phase = "caught"
)

// State is the agent's behaviour state. It only changes through the
// transition methods on Agent.
type State struct {
	Mode  Mode
	Phase Phase
}

func (s State) String() string {
	return fmt.Sprintf("%s/%s", s.Mode, s.Phase)
}

func (s State) valid() bool {
	switch s.Mode {
	case ModePatrol:
		return s.Phase == PhaseMoving || s.Phase == PhaseWaiting || s.Phase == PhaseInvestigating
	case ModeChase:
		return s.Phase == PhasePursuing || s.Phase == PhaseCaught
	}
	return false
}

type Reason string

const (
	ReasonSpawn       Reason = "spawn"
	ReasonSighted     Reason = "sighted"
	ReasonLost        Reason = "lost"
	ReasonDisengage   Reason = "disengage"
	ReasonArrived     Reason = "arrived"
	ReasonWaitExpired Reason = "wait_expired"
	ReasonAlerted     Reason = "alerted"
	ReasonCaught      Reason = "caught"
	ReasonRecovered   Reason = "recovered"
)

// Transition records one state change.
type Transition struct {
	From   State
	To     State
	Reason Reason
	At     time.Duration // agent clock
}

var (
	statePatrolMoving        = State{ModePatrol, PhaseMoving}
	statePatrolWaiting       = State{ModePatrol, PhaseWaiting}
	statePatrolInvestigating = State{ModePatrol, PhaseInvestigating}
	stateChasePursuing       = State{ModeChase, PhasePursuing}
	stateChaseCaught         = State{ModeChase, PhaseCaught}
)
