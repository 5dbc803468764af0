package chore

import (
	"fmt"

	"choretracker/internal/clock"
	"choretracker/internal/models"
)

// StateKind is the due-state of a single task on a given day.
type StateKind int

const (
	// StateNotDue means a regular task's next expected day is still ahead.
	StateNotDue StateKind = iota
	// StateDueToday means a regular task falls due exactly today.
	StateDueToday
	// StateOverdue means a regular task's expected day has passed.
	StateOverdue
	// StateAlwaysDue is the permanent state of a once-off task.
	StateAlwaysDue
	// StateUntracked is the state of counter tasks, which carry no due
	// concept and are never alerted.
	StateUntracked
)

func (k StateKind) String() string {
	switch k {
	case StateNotDue:
		return "not_due"
	case StateDueToday:
		return "due_today"
	case StateOverdue:
		return "overdue"
	case StateAlwaysDue:
		return "always_due"
	case StateUntracked:
		return "untracked"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// State is the classification result for one task. DaysLate is set only
// for StateOverdue.
type State struct {
	Kind     StateKind
	DaysLate int
}

// Classify maps a task and "today" to its due-state. It is pure and holds
// no state between passes. An unsupported task type yields an error; the
// caller decides whether to skip or fail.
func Classify(t models.Task, today clock.Date) (State, error) {
	switch t.Type {
	case models.TaskRegular:
		next := t.NextExpected()
		switch {
		case next.After(today):
			return State{Kind: StateNotDue}, nil
		case next.Before(today):
			return State{Kind: StateOverdue, DaysLate: today.Sub(next)}, nil
		default:
			return State{Kind: StateDueToday}, nil
		}
	case models.TaskOnceOff:
		return State{Kind: StateAlwaysDue}, nil
	case models.TaskCounter:
		return State{Kind: StateUntracked}, nil
	default:
		return State{}, fmt.Errorf("unsupported task type: %s", t.Type)
	}
}
