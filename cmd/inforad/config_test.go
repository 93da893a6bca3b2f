package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterTableDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    FilterTable
		wantErr bool
	}{
		{
			name:  "plain series",
			value: "dc_inbox:47168",
			want:  FilterTable{"dc_inbox": 47168},
		},
		{
			name:  "series keys with tags",
			value: "CA,priority=Blocker:47165;CA,priority=Critical:47166",
			want: FilterTable{
				"CA,priority=Blocker":  47165,
				"CA,priority=Critical": 47166,
			},
		},
		{
			name:  "empty entries skipped",
			value: "dc_inbox:47168; ;",
			want:  FilterTable{"dc_inbox": 47168},
		},
		{
			name:    "missing filter id",
			value:   "dc_inbox",
			wantErr: true,
		},
		{
			name:    "non numeric filter id",
			value:   "dc_inbox:abc",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var table FilterTable
			err := table.Decode(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, table)
		})
	}
}

func TestRepoListDecode(t *testing.T) {
	t.Parallel()

	var repos RepoList
	require.NoError(t, repos.Decode("xapi-project/xen-api;xenserver/status-report"))
	assert.Equal(t, RepoList{
		{Owner: "xapi-project", Name: "xen-api"},
		{Owner: "xenserver", Name: "status-report"},
	}, repos)

	assert.Error(t, repos.Decode("noslash"))
	assert.Error(t, repos.Decode("/missing-owner"))
}

func TestNewMetricSet(t *testing.T) {
	t.Parallel()

	conf := Config{
		JiraCountFilters: FilterTable{"dc_inbox": 47168},
		QRFSeries:        "CA,priority=QRF",
		QRFFilterID:      47875,
		QRFFieldID:       "customfield_18131",
		QRFRound:         3,
		BacklogSeries:    "backlog_depth",
		BacklogFilterID:  50374,
		BacklogFieldID:   "customfield_11332",
		BacklogRound:     2,
		BurndownSeries:   "sprint_burndown",
		BurndownFilterID: 50375,
		BurndownFieldID:  "customfield_11332",
		VelocitySeries:   "sprint_velocity",
		VelocityBoardID:  70,
		VelocityWindow:   3,
		GithubRepos:      RepoList{{Owner: "xapi-project", Name: "xen-api"}},
		GithubBugLabel:   "bug",
	}

	m := newMetricSet(conf)

	assert.Equal(t, 7, m.Size())
	require.Len(t, m.Repos, 1)
	assert.Equal(t, "open_prs,repo=xapi-project/xen-api", m.Repos[0].PRSeries)
	assert.Equal(t, "open_bugs,repo=xapi-project/xen-api", m.Repos[0].IssueSeries)

	series := metricSeries(m)
	assert.Equal(t, []string{
		"dc_inbox",
		"CA,priority=QRF",
		"backlog_depth",
		"sprint_burndown",
		"sprint_velocity",
		"open_prs,repo=xapi-project/xen-api",
		"open_bugs,repo=xapi-project/xen-api",
	}, series)
}
