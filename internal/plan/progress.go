package plan

import "math"

// Progress returns round(100 * completed / total), 0 for an empty list,
// clamped to [0, 100].
func Progress(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	pct := int(math.Round(float64(done) / float64(len(tasks)) * 100))
	return ClampPercent(pct)
}

// ClampPercent bounds a display percentage to [0, 100].
func ClampPercent(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// AllDone reports whether the list is non-empty and every task is complete.
func AllDone(tasks []Task) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// CompletedSubjects returns the distinct subjects of completed tasks in
// first-seen order.
func CompletedSubjects(tasks []Task) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tasks {
		if !t.Completed || seen[t.Subject] {
			continue
		}
		seen[t.Subject] = true
		out = append(out, t.Subject)
	}
	return out
}

// Footer returns the line shown under the task list.
func Footer(pct int) string {
	if pct == 100 {
		return "Amazing! You won the day. Go rest! 🏆"
	}
	return "Good work. One step a day is already progress. ✨"
}
