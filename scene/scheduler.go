package scene

import "time"

// System is one stage of the per-tick pipeline.
type System interface {
	Update(dt time.Duration)
}

// SystemFunc adapts a function to System.
type SystemFunc func(dt time.Duration)

func (f SystemFunc) Update(dt time.Duration) { f(dt) }

// Scheduler runs systems in registration order. Nil systems are skipped.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		if system != nil {
			s.systems = append(s.systems, system)
		}
	}
	return s
}

func (s *Scheduler) Update(dt time.Duration) {
	for _, system := range s.systems {
		system.Update(dt)
	}
}
