package model

type ResourceType string

const (
	ResourceDocumentation ResourceType = "documentation"
	ResourceTutorial      ResourceType = "tutorial"
	ResourceCourse        ResourceType = "course"
	ResourceVideo         ResourceType = "video"
	ResourceArticle       ResourceType = "article"
)

type Resource struct {
	Title string       `json:"title"`
	URL   string       `json:"url"`
	Type  ResourceType `json:"type"`
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// CategoryProject marks a week as a project milestone. The milestones
// summary treats these separately from regular study weeks.
const CategoryProject = "project"

// Week is one weekly curriculum unit. Week numbers are unique across the
// collection; slice order is insertion order and doubles as display order.
type Week struct {
	Week           int        `json:"week"`
	StartDate      string     `json:"startDate"` // YYYY-MM-DD
	Concept        string     `json:"concept"`
	Practice       string     `json:"practice"`
	HoursExpected  float64    `json:"hoursExpected"`
	HoursCompleted float64    `json:"hoursCompleted"`
	Completed      bool       `json:"completed"`
	Notes          string     `json:"notes"`
	Resources      []Resource `json:"resources"`
	Priority       Priority   `json:"priority"`
	Category       string     `json:"category"`
	Tags           []string   `json:"tags,omitempty"`
}

// HasTag reports whether the week carries the given tag (exact match).
func (w Week) HasTag(tag string) bool {
	for _, t := range w.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SyncConfig is the persisted cloud-sync configuration.
type SyncConfig struct {
	GistID      string `json:"gistId,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
	AutoSync    bool   `json:"autoSync"`
	// SyncInterval is in minutes.
	SyncInterval int `json:"syncInterval"`
}

// Configured reports whether the config carries a token, i.e. whether cloud
// sync can be attempted at all.
func (c SyncConfig) Configured() bool {
	return c.AccessToken != ""
}

// FilterOptions describes one dashboard filter set. It is ephemeral: it is
// never persisted and resets per session.
type FilterOptions struct {
	Category  string // "all" or "" disables the axis
	Priority  string // "all" or "" disables the axis
	Completed *bool  // nil disables the axis
	Search    string
}
