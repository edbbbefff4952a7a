package housekeeping

import (
	"fmt"
	"sort"
	"strings"

	"coliving/internal/domain"
)

// FormatPlanMessage renders the day's task list as a multi-line text
// message grouped by property, one line per task, for copy-paste
// distribution to the housekeeping team.
func FormatPlanMessage(date string, tasks []domain.RoomTask) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Cleaning plan for %s\n", date)

	if len(tasks) == 0 {
		sb.WriteString("\nNo rooms need cleaning.\n")
		return sb.String()
	}

	byProperty := make(map[string][]domain.RoomTask)
	var names []string
	for _, t := range tasks {
		if _, seen := byProperty[t.PropertyName]; !seen {
			names = append(names, t.PropertyName)
		}
		byProperty[t.PropertyName] = append(byProperty[t.PropertyName], t)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&sb, "\n%s:\n", name)
		for _, t := range byProperty[name] {
			fmt.Fprintf(&sb, "- %s: %s (priority %d, %s)\n", t.RoomName, t.TypeLabel(), t.Priority, t.AssignedTo)
		}
	}
	return sb.String()
}
