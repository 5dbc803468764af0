package chore

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"choretracker/internal/clock"
	"choretracker/internal/models"
)

const digestHeader = "You have the following tasks due:"

// BuildDigests partitions tasks by owner, classifies each one against
// today, and composes one alert message per owner. Owners with nothing
// due are absent from the result, so no empty digests ever go out.
//
// Tasks keep their input order within a digest; regular lines come first,
// then a separate section for one-off tasks.
func BuildDigests(tasks []models.Task, today clock.Date, logger zerolog.Logger) map[int64]string {
	byOwner := make(map[int64][]models.Task)
	owners := make([]int64, 0)
	for _, t := range tasks {
		if _, seen := byOwner[t.OwnerID]; !seen {
			owners = append(owners, t.OwnerID)
		}
		byOwner[t.OwnerID] = append(byOwner[t.OwnerID], t)
	}

	digests := make(map[int64]string, len(byOwner))
	for _, owner := range owners {
		if msg, ok := buildDigest(byOwner[owner], today, logger); ok {
			digests[owner] = msg
		}
	}
	return digests
}

func buildDigest(tasks []models.Task, today clock.Date, logger zerolog.Logger) (string, bool) {
	var repeated, onceOff []string
	for _, t := range tasks {
		state, err := Classify(t, today)
		if err != nil {
			logger.Warn().
				Int64("owner_id", t.OwnerID).
				Str("name", t.Name).
				Msg("skipping task with unsupported type")
			continue
		}

		switch state.Kind {
		case StateDueToday:
			repeated = append(repeated, fmt.Sprintf("* %s", t.Name))
		case StateOverdue:
			repeated = append(repeated, fmt.Sprintf("* %s - %d days late", t.Name, state.DaysLate))
		case StateAlwaysDue:
			onceOff = append(onceOff, fmt.Sprintf("* %s", t.Name))
		case StateNotDue:
			logger.Debug().
				Int64("owner_id", t.OwnerID).
				Str("name", t.Name).
				Str("last_completed", t.LastCompleted.String()).
				Str("deadline", t.NextExpected().String()).
				Msg("not alerting")
		case StateUntracked:
			// Counters have no due concept.
		}
	}

	if len(repeated) == 0 && len(onceOff) == 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString(digestHeader + "\n")
	for _, line := range repeated {
		b.WriteString(line + "\n")
	}
	if len(onceOff) > 0 {
		if len(repeated) > 0 {
			b.WriteString("\n")
		}
		b.WriteString("One-off tasks:\n")
		for _, line := range onceOff {
			b.WriteString(line + "\n")
		}
	}
	return b.String(), true
}
