package progress

import (
	"math"
	"strings"

	"roadmap-cli/internal/model"
)

type Stats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"inProgress"`
	TotalHours     float64 `json:"totalHours"`
	CompletedHours float64 `json:"completedHours"`
	// CompletionRate is a rounded percentage of completed weeks.
	CompletionRate int `json:"completionRate"`

	Projects     int `json:"projects"`
	ProjectsDone int `json:"projectsDone"`

	// Current is the week the user should be working on, or nil for an
	// empty collection.
	Current *model.Week `json:"current,omitempty"`
}

// currentWeekRules is the ordered fallback chain for the "current" week:
// first incomplete week in collection order, then the last week when
// everything is complete, then an explicitly tagged week. First rule that
// yields a week wins.
var currentWeekRules = []func(weeks []model.Week) *model.Week{
	firstIncomplete,
	lastOfAll,
	taggedCurrent,
}

// CurrentWeek resolves the "current" week via the rule chain. The result
// points into the input slice.
func CurrentWeek(weeks []model.Week) *model.Week {
	for _, rule := range currentWeekRules {
		if w := rule(weeks); w != nil {
			return w
		}
	}
	return nil
}

func firstIncomplete(weeks []model.Week) *model.Week {
	for i := range weeks {
		if !weeks[i].Completed {
			return &weeks[i]
		}
	}
	return nil
}

func lastOfAll(weeks []model.Week) *model.Week {
	if len(weeks) == 0 {
		return nil
	}
	return &weeks[len(weeks)-1]
}

func taggedCurrent(weeks []model.Week) *model.Week {
	for i := range weeks {
		if weeks[i].HasTag("current") || strings.Contains(strings.ToLower(weeks[i].Notes), "current") {
			return &weeks[i]
		}
	}
	return nil
}

// Compute derives the dashboard stats from the full collection.
func Compute(weeks []model.Week) Stats {
	st := Stats{Total: len(weeks)}
	for i := range weeks {
		w := &weeks[i]
		if w.Completed {
			st.Completed++
		}
		st.TotalHours += w.HoursExpected
		st.CompletedHours += w.HoursCompleted
		if w.Category == model.CategoryProject {
			st.Projects++
			if w.Completed {
				st.ProjectsDone++
			}
		}
	}
	st.InProgress = st.Total - st.Completed
	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	st.Current = CurrentWeek(weeks)
	return st
}

// Phase is a contiguous block of the curriculum with its own completion
// summary.
type Phase struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	FromWeek    int    `json:"fromWeek"`
	ToWeek      int    `json:"toWeek"`
	Total       int    `json:"total"`
	Completed   int    `json:"completed"`
	Percent     int    `json:"percent"`
}

var phaseDefs = []Phase{
	{Name: "Foundation", Description: "Python, data manipulation, statistics", FromWeek: 1, ToWeek: 10},
	{Name: "ML Fundamentals", Description: "Machine learning, deep learning", FromWeek: 11, ToWeek: 20},
	{Name: "Advanced ML", Description: "Computer vision, NLP, advanced topics", FromWeek: 21, ToWeek: 30},
	{Name: "Deployment & MLOps", Description: "APIs, deployment, production", FromWeek: 31, ToWeek: 40},
	{Name: "Specialization & Portfolio", Description: "Advanced projects, portfolio", FromWeek: 41, ToWeek: 52},
}

// Phases summarizes completion per curriculum phase. Weeks outside every
// phase range (user-added weeks past 52) are simply not counted.
func Phases(weeks []model.Week) []Phase {
	out := make([]Phase, len(phaseDefs))
	copy(out, phaseDefs)
	for i := range out {
		p := &out[i]
		for _, w := range weeks {
			if w.Week < p.FromWeek || w.Week > p.ToWeek {
				continue
			}
			p.Total++
			if w.Completed {
				p.Completed++
			}
		}
		if p.Total > 0 {
			p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
		}
	}
	return out
}
