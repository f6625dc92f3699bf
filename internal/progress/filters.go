package progress

import (
	"strings"

	"roadmap-cli/internal/model"
)

// FilterAll disables a string filter axis. An empty string works the same
// way so zero-valued FilterOptions are a no-op.
const FilterAll = "all"

func axisActive(v string) bool {
	return v != "" && v != FilterAll
}

// Apply returns the weeks matching every active filter axis (AND). Inactive
// axes are no-ops, so a zero FilterOptions returns the input unchanged
// (as a fresh slice; the input is never mutated).
func Apply(weeks []model.Week, f model.FilterOptions) []model.Week {
	out := make([]model.Week, 0, len(weeks))
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	for _, w := range weeks {
		if axisActive(f.Category) && w.Category != f.Category {
			continue
		}
		if axisActive(f.Priority) && string(w.Priority) != f.Priority {
			continue
		}
		if f.Completed != nil && w.Completed != *f.Completed {
			continue
		}
		if needle != "" && !matchesSearch(w, needle) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// matchesSearch does a case-insensitive substring match against concept,
// practice, notes and tags.
func matchesSearch(w model.Week, needle string) bool {
	if strings.Contains(strings.ToLower(w.Concept), needle) ||
		strings.Contains(strings.ToLower(w.Practice), needle) ||
		strings.Contains(strings.ToLower(w.Notes), needle) {
		return true
	}
	for _, tag := range w.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Categories returns the distinct categories in collection order.
func Categories(weeks []model.Week) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, w := range weeks {
		if w.Category == "" || seen[w.Category] {
			continue
		}
		seen[w.Category] = true
		out = append(out, w.Category)
	}
	return out
}
