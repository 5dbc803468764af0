package chore

import (
	"fmt"

	"choretracker/internal/models"
)

// FormatListLine renders one task the way listings show it, in the bot
// and on the web alike.
func FormatListLine(t models.Task) string {
	switch t.Type {
	case models.TaskOnceOff:
		return fmt.Sprintf("%s - One-off", t.Name)
	case models.TaskCounter:
		return fmt.Sprintf("%s - Last performed %s", t.Name, t.LastCompleted)
	default:
		return fmt.Sprintf("%s - Every %d days - Last performed %s",
			t.Name, t.FrequencyDays, t.LastCompleted)
	}
}
