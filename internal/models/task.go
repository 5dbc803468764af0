package models

import (
	"fmt"

	"choretracker/internal/clock"
)

// TaskType is the closed set of chore kinds. The integer values are wire
// tags persisted in the store and must stay stable.
type TaskType int

const (
	// TaskRegular recurs every FrequencyDays days from its last completion.
	TaskRegular TaskType = 0
	// TaskOnceOff has no recurrence and stays due until deleted.
	TaskOnceOff TaskType = 1
	// TaskCounter only tracks when it was last done; it is never due.
	TaskCounter TaskType = 2
)

// ParseTaskType maps a stored wire tag back to a TaskType.
func ParseTaskType(tag int) (TaskType, error) {
	switch t := TaskType(tag); t {
	case TaskRegular, TaskOnceOff, TaskCounter:
		return t, nil
	default:
		return 0, fmt.Errorf("unsupported task type tag: %d", tag)
	}
}

func (t TaskType) String() string {
	switch t {
	case TaskRegular:
		return "regular"
	case TaskOnceOff:
		return "once_off"
	case TaskCounter:
		return "counter"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Task is a single tracked chore. (OwnerID, Name) is its identity; names
// are matched by exact, case-sensitive equality.
type Task struct {
	OwnerID       int64
	Name          string
	Type          TaskType
	FrequencyDays int
	LastCompleted clock.Date
}

// DaysSinceCompleted returns the whole days elapsed between the last
// completion and today.
func (t Task) DaysSinceCompleted(today clock.Date) int {
	return today.Sub(t.LastCompleted)
}

// DaysOverdue returns how many days past its frequency a regular task is.
// Negative means it is not yet due. Only meaningful for TaskRegular.
func (t Task) DaysOverdue(today clock.Date) int {
	return t.DaysSinceCompleted(today) - t.FrequencyDays
}

// NextExpected is the calendar day a regular task falls due.
func (t Task) NextExpected() clock.Date {
	return t.LastCompleted.AddDays(t.FrequencyDays)
}
