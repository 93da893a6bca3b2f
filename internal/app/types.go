package app

import "time"

// Sample is a single time-series data point.
//
// Series is a raw line-protocol series key (measurement with optional tags,
// e.g. "dc_inbox" or "CA,priority=Blocker"). It is written to the database
// verbatim.
type Sample struct {
	Series string
	Value  float64
	Time   time.Time
}

// FieldSumMetric is a gauge computed by summing a numeric issue field over a
// saved filter. Round is the number of decimal places to keep; a negative
// value keeps the raw sum.
type FieldSumMetric struct {
	Series   string
	FilterID int
	FieldID  string
	Round    int
}

// VelocityMetric is the average completed estimate over the last Window
// closed sprints on a board. Sprints are matched by name when NameRegexp is
// not empty.
type VelocityMetric struct {
	Series     string
	BoardID    int64
	NameRegexp string
	Window     int
}

// RepoMetric describes a code host repository to poll. When BugLabel is not
// empty, an open-issue count restricted to that label is collected alongside
// the open pull request count.
type RepoMetric struct {
	PRSeries    string
	IssueSeries string
	Owner       string
	Repo        string
	BugLabel    string
}

// MetricSet is the full table of metrics evaluated each collection cycle.
type MetricSet struct {
	CountFilters map[string]int
	FieldSums    []FieldSumMetric
	Velocity     []VelocityMetric
	Repos        []RepoMetric
}

// Size returns the number of configured metrics.
func (m MetricSet) Size() int {
	n := len(m.CountFilters) + len(m.FieldSums) + len(m.Velocity)
	for _, r := range m.Repos {
		n++
		if r.BugLabel != "" {
			n++
		}
	}
	return n
}
