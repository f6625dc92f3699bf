package progress

import (
	"fmt"

	"roadmap-cli/internal/model"
)

// NotFoundError reports an operation against a week number that does not
// exist in the collection.
type NotFoundError struct {
	Week int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("week not found: %d", e.Week)
}

// NextWeekNumber is one greater than the largest week number, or 1 for an
// empty collection.
func NextWeekNumber(weeks []model.Week) int {
	max := 0
	for _, w := range weeks {
		if w.Week > max {
			max = w.Week
		}
	}
	return max + 1
}

// Add assigns the next week number to w and appends it to the end of the
// collection. Returns the new collection and the week as stored.
func Add(weeks []model.Week, w model.Week) ([]model.Week, model.Week) {
	w.Week = NextWeekNumber(weeks)
	return append(weeks, w), w
}

// Patch holds optional field updates for a week. Nil fields are left
// untouched.
type Patch struct {
	StartDate      *string
	Concept        *string
	Practice       *string
	HoursExpected  *float64
	HoursCompleted *float64
	Completed      *bool
	Notes          *string
	Resources      *[]model.Resource
	Priority       *model.Priority
	Category       *string
	Tags           *[]string
}

// Update merges the patch into the week with the given number, in place.
// Unknown week numbers return NotFoundError (the original UI dropped these
// silently; callers here are expected to surface it).
func Update(weeks []model.Week, number int, p Patch) (*model.Week, error) {
	for i := range weeks {
		if weeks[i].Week != number {
			continue
		}
		w := &weeks[i]
		if p.StartDate != nil {
			w.StartDate = *p.StartDate
		}
		if p.Concept != nil {
			w.Concept = *p.Concept
		}
		if p.Practice != nil {
			w.Practice = *p.Practice
		}
		if p.HoursExpected != nil {
			w.HoursExpected = *p.HoursExpected
		}
		if p.HoursCompleted != nil {
			w.HoursCompleted = *p.HoursCompleted
		}
		if p.Completed != nil {
			w.Completed = *p.Completed
		}
		if p.Notes != nil {
			w.Notes = *p.Notes
		}
		if p.Resources != nil {
			w.Resources = *p.Resources
		}
		if p.Priority != nil {
			w.Priority = *p.Priority
		}
		if p.Category != nil {
			w.Category = *p.Category
		}
		if p.Tags != nil {
			w.Tags = *p.Tags
		}
		return w, nil
	}
	return nil, NotFoundError{Week: number}
}

// Delete removes the week with the given number, preserving the order of
// the rest. The confirmation gate lives in the UI layers; removal here is
// unconditional.
func Delete(weeks []model.Week, number int) ([]model.Week, error) {
	for i := range weeks {
		if weeks[i].Week == number {
			return append(weeks[:i:i], weeks[i+1:]...), nil
		}
	}
	return weeks, NotFoundError{Week: number}
}

// Find returns a pointer to the week with the given number.
func Find(weeks []model.Week, number int) (*model.Week, bool) {
	for i := range weeks {
		if weeks[i].Week == number {
			return &weeks[i], true
		}
	}
	return nil, false
}
