package main

import (
	"sort"

	"github.com/euanh/inforad/internal/adapter/influx"
	"github.com/euanh/inforad/internal/app"
)

// newMetricSet builds the metric table from configuration.
func newMetricSet(conf Config) app.MetricSet {
	m := app.MetricSet{
		CountFilters: conf.JiraCountFilters,
		FieldSums: []app.FieldSumMetric{
			{
				Series:   conf.QRFSeries,
				FilterID: conf.QRFFilterID,
				FieldID:  conf.QRFFieldID,
				Round:    conf.QRFRound,
			},
			{
				Series:   conf.BacklogSeries,
				FilterID: conf.BacklogFilterID,
				FieldID:  conf.BacklogFieldID,
				Round:    conf.BacklogRound,
			},
			{
				Series:   conf.BurndownSeries,
				FilterID: conf.BurndownFilterID,
				FieldID:  conf.BurndownFieldID,
				Round:    -1,
			},
		},
		Velocity: []app.VelocityMetric{
			{
				Series:     conf.VelocitySeries,
				BoardID:    conf.VelocityBoardID,
				NameRegexp: conf.VelocitySprintRegexp,
				Window:     conf.VelocityWindow,
			},
		},
	}

	for _, r := range conf.GithubRepos {
		tag := influx.EscapeTagValue(r.Owner + "/" + r.Name)
		m.Repos = append(m.Repos, app.RepoMetric{
			PRSeries:    "open_prs,repo=" + tag,
			IssueSeries: "open_bugs,repo=" + tag,
			Owner:       r.Owner,
			Repo:        r.Name,
			BugLabel:    conf.GithubBugLabel,
		})
	}

	return m
}

// metricSeries lists every series key the metric set produces, count
// filters first in sorted order. The dashboard panel layout follows this
// order.
func metricSeries(m app.MetricSet) []string {
	series := make([]string, 0, m.Size())
	for s := range m.CountFilters {
		series = append(series, s)
	}
	sort.Strings(series)

	for _, f := range m.FieldSums {
		series = append(series, f.Series)
	}
	for _, v := range m.Velocity {
		series = append(series, v.Series)
	}
	for _, r := range m.Repos {
		series = append(series, r.PRSeries)
		if r.BugLabel != "" {
			series = append(series, r.IssueSeries)
		}
	}

	return series
}
