package chore

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"choretracker/internal/clock"
	"choretracker/internal/models"
)

func TestBuildDigestsComposesSections(t *testing.T) {
	today := clock.NewDate(2024, time.January, 10)
	tasks := []models.Task{
		{OwnerID: 1, Name: "dishes", Type: models.TaskRegular, FrequencyDays: 9, LastCompleted: clock.NewDate(2024, time.January, 1)},
		{OwnerID: 1, Name: "laundry", Type: models.TaskRegular, FrequencyDays: 3, LastCompleted: clock.NewDate(2024, time.January, 1)},
		{OwnerID: 1, Name: "passport", Type: models.TaskOnceOff, LastCompleted: clock.NewDate(2024, time.January, 1)},
	}

	digests := BuildDigests(tasks, today, zerolog.Nop())
	if len(digests) != 1 {
		t.Fatalf("expected one digest, got %d", len(digests))
	}

	want := "You have the following tasks due:\n" +
		"* dishes\n" +
		"* laundry - 6 days late\n" +
		"\n" +
		"One-off tasks:\n" +
		"* passport\n"
	if digests[1] != want {
		t.Fatalf("digest mismatch:\ngot:\n%s\nwant:\n%s", digests[1], want)
	}
}

func TestBuildDigestsOnceOffOnlyHasNoLeadingBlankLine(t *testing.T) {
	today := clock.NewDate(2024, time.June, 1)
	tasks := []models.Task{
		{OwnerID: 7, Name: "passport", Type: models.TaskOnceOff, LastCompleted: clock.NewDate(2024, time.January, 1)},
	}

	digests := BuildDigests(tasks, today, zerolog.Nop())
	want := "You have the following tasks due:\n" +
		"One-off tasks:\n" +
		"* passport\n"
	if digests[7] != want {
		t.Fatalf("digest mismatch:\ngot:\n%s\nwant:\n%s", digests[7], want)
	}
	if strings.Contains(digests[7], "\n\n") {
		t.Fatal("did not expect a blank line without regular items")
	}
}

func TestBuildDigestsOmitsOwnersWithNothingDue(t *testing.T) {
	today := clock.NewDate(2024, time.January, 2)
	tasks := []models.Task{
		// Not due yet.
		{OwnerID: 1, Name: "dishes", Type: models.TaskRegular, FrequencyDays: 7, LastCompleted: clock.NewDate(2024, time.January, 1)},
		// Counters never alert.
		{OwnerID: 2, Name: "haircut", Type: models.TaskCounter, LastCompleted: clock.NewDate(2023, time.June, 1)},
	}

	digests := BuildDigests(tasks, today, zerolog.Nop())
	if len(digests) != 0 {
		t.Fatalf("expected no digests, got %v", digests)
	}
}

func TestBuildDigestsSkipsUnsupportedTypes(t *testing.T) {
	today := clock.NewDate(2024, time.January, 10)
	tasks := []models.Task{
		{OwnerID: 1, Name: "mystery", Type: models.TaskType(99), LastCompleted: clock.NewDate(2024, time.January, 1)},
		{OwnerID: 1, Name: "dishes", Type: models.TaskRegular, FrequencyDays: 3, LastCompleted: clock.NewDate(2024, time.January, 1)},
	}

	digests := BuildDigests(tasks, today, zerolog.Nop())
	if len(digests) != 1 {
		t.Fatalf("expected one digest, got %d", len(digests))
	}
	if strings.Contains(digests[1], "mystery") {
		t.Fatalf("unsupported task leaked into digest: %s", digests[1])
	}
}

func TestBuildDigestsPartitionsByOwner(t *testing.T) {
	today := clock.NewDate(2024, time.January, 10)
	tasks := []models.Task{
		{OwnerID: 1, Name: "dishes", Type: models.TaskRegular, FrequencyDays: 3, LastCompleted: clock.NewDate(2024, time.January, 1)},
		{OwnerID: 2, Name: "bins", Type: models.TaskRegular, FrequencyDays: 9, LastCompleted: clock.NewDate(2024, time.January, 1)},
		{OwnerID: 1, Name: "passport", Type: models.TaskOnceOff, LastCompleted: clock.NewDate(2024, time.January, 1)},
	}

	digests := BuildDigests(tasks, today, zerolog.Nop())
	if len(digests) != 2 {
		t.Fatalf("expected two digests, got %d", len(digests))
	}
	if !strings.Contains(digests[1], "dishes") || !strings.Contains(digests[1], "passport") {
		t.Fatalf("owner 1 digest incomplete: %s", digests[1])
	}
	if strings.Contains(digests[2], "dishes") || !strings.Contains(digests[2], "bins") {
		t.Fatalf("owner 2 digest wrong: %s", digests[2])
	}
}

func TestBuildDigestsKeepsInputOrder(t *testing.T) {
	today := clock.NewDate(2024, time.January, 10)
	tasks := []models.Task{
		{OwnerID: 1, Name: "zebra", Type: models.TaskRegular, FrequencyDays: 1, LastCompleted: clock.NewDate(2024, time.January, 1)},
		{OwnerID: 1, Name: "apple", Type: models.TaskRegular, FrequencyDays: 1, LastCompleted: clock.NewDate(2024, time.January, 1)},
	}

	digest := BuildDigests(tasks, today, zerolog.Nop())[1]
	if strings.Index(digest, "zebra") > strings.Index(digest, "apple") {
		t.Fatalf("expected input order preserved, got:\n%s", digest)
	}
}

func TestFormatListLine(t *testing.T) {
	last := clock.NewDate(2024, time.January, 1)
	cases := []struct {
		task models.Task
		want string
	}{
		{
			models.Task{Name: "dishes", Type: models.TaskRegular, FrequencyDays: 3, LastCompleted: last},
			"dishes - Every 3 days - Last performed 2024-01-01",
		},
		{
			models.Task{Name: "haircut", Type: models.TaskCounter, LastCompleted: last},
			"haircut - Last performed 2024-01-01",
		},
		{
			models.Task{Name: "passport", Type: models.TaskOnceOff, LastCompleted: last},
			"passport - One-off",
		},
	}

	for _, tc := range cases {
		if got := FormatListLine(tc.task); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}
