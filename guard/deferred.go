package guard

import (
	"sort"
	"time"
)

type deferredAction struct {
	name string
	at   time.Duration
	seq  int
	fn   func()
}

// deferredQueue holds named actions due at a point on the agent clock.
// Scheduling a name that is already pending replaces it.
type deferredQueue struct {
	items []deferredAction
	seq   int
}

func (q *deferredQueue) schedule(name string, at time.Duration, fn func()) {
	q.cancel(name)
	q.seq++
	q.items = append(q.items, deferredAction{name: name, at: at, seq: q.seq, fn: fn})
}

func (q *deferredQueue) cancel(name string) bool {
	for i, it := range q.items {
		if it.name == name {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

func (q *deferredQueue) pending(name string) bool {
	for _, it := range q.items {
		if it.name == name {
			return true
		}
	}
	return false
}

// run fires every action due at or before now, earliest first.
func (q *deferredQueue) run(now time.Duration) {
	if len(q.items) == 0 {
		return
	}
	var due []deferredAction
	kept := q.items[:0]
	for _, it := range q.items {
		if it.at <= now {
			due = append(due, it)
		} else {
			kept = append(kept, it)
		}
	}
	q.items = kept
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, it := range due {
		it.fn()
	}
}
