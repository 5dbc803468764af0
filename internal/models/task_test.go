package models

import (
	"testing"
	"time"

	"choretracker/internal/clock"
)

func TestParseTaskTypeKnownTags(t *testing.T) {
	for tag, want := range map[int]TaskType{
		0: TaskRegular,
		1: TaskOnceOff,
		2: TaskCounter,
	} {
		got, err := ParseTaskType(tag)
		if err != nil {
			t.Fatalf("unexpected error for tag %d: %v", tag, err)
		}
		if got != want {
			t.Fatalf("tag %d: got %v, want %v", tag, got, want)
		}
	}
}

func TestParseTaskTypeRejectsUnknownTag(t *testing.T) {
	for _, tag := range []int{-1, 3, 42} {
		_, err := ParseTaskType(tag)
		if err == nil {
			t.Fatalf("expected error for tag %d", tag)
		}
	}
}

func TestDerivedFields(t *testing.T) {
	task := Task{
		OwnerID:       1,
		Name:          "dishes",
		Type:          TaskRegular,
		FrequencyDays: 3,
		LastCompleted: clock.NewDate(2024, time.January, 1),
	}

	today := clock.NewDate(2024, time.January, 10)
	if got := task.DaysSinceCompleted(today); got != 9 {
		t.Fatalf("days since: got %d, want 9", got)
	}
	if got := task.DaysOverdue(today); got != 6 {
		t.Fatalf("days overdue: got %d, want 6", got)
	}
	if got := task.NextExpected(); got != clock.NewDate(2024, time.January, 4) {
		t.Fatalf("next expected: got %v", got)
	}
}
