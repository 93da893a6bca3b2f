package app_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euanh/inforad/internal/app"
	"github.com/euanh/inforad/internal/app/mock"
)

func TestServiceCollect(t *testing.T) {
	t.Parallel()

	metrics := app.MetricSet{
		CountFilters: map[string]int{
			"dc_inbox":            47168,
			"CA,priority=Blocker": 47165,
		},
		FieldSums: []app.FieldSumMetric{
			{Series: "CA,priority=QRF", FilterID: 47875, FieldID: "customfield_18131", Round: 3},
			{Series: "backlog_depth", FilterID: 50374, FieldID: "customfield_11332", Round: 2},
		},
		Velocity: []app.VelocityMetric{
			{Series: "sprint_velocity", BoardID: 70, NameRegexp: `^xs-ring3\s.+`, Window: 3},
		},
		Repos: []app.RepoMetric{
			{
				PRSeries:    "github_open_prs,repo=xapi",
				IssueSeries: "github_open_bugs,repo=xapi",
				Owner:       "xapi-project",
				Repo:        "xen-api",
				BugLabel:    "bug",
			},
		},
	}

	tests := []struct {
		name         string
		setupTracker func(*mock.MockBugTracker)
		setupHost    func(*mock.MockCodeHost)
		wantSeries   []string
		wantValues   map[string]float64
	}{
		{
			name: "all metrics collected, sorted by series",
			setupTracker: func(m *mock.MockBugTracker) {
				m.EXPECT().FilterCount(gomock.Any(), 47168).Return(12, nil)
				m.EXPECT().FilterCount(gomock.Any(), 47165).Return(3, nil)
				m.EXPECT().FilterFieldSum(gomock.Any(), 47875, "customfield_18131").Return(1.23456, nil)
				m.EXPECT().FilterFieldSum(gomock.Any(), 50374, "customfield_11332").Return(88.005, nil)
				m.EXPECT().SprintVelocity(gomock.Any(), int64(70), `^xs-ring3\s.+`, 3).Return(21.67, nil)
			},
			setupHost: func(m *mock.MockCodeHost) {
				m.EXPECT().OpenPullRequestCount(gomock.Any(), "xapi-project", "xen-api").Return(7, nil)
				m.EXPECT().OpenIssueCount(gomock.Any(), "xapi-project", "xen-api", "bug").Return(2, nil)
			},
			wantSeries: []string{
				"CA,priority=Blocker",
				"CA,priority=QRF",
				"backlog_depth",
				"dc_inbox",
				"github_open_bugs,repo=xapi",
				"github_open_prs,repo=xapi",
				"sprint_velocity",
			},
			wantValues: map[string]float64{
				"CA,priority=QRF": 1.235,
				"backlog_depth":   88.01,
				"sprint_velocity": 21.7,
				"dc_inbox":        12,
			},
		},
		{
			name: "failing metric skipped, rest collected",
			setupTracker: func(m *mock.MockBugTracker) {
				m.EXPECT().FilterCount(gomock.Any(), 47168).Return(12, nil)
				m.EXPECT().FilterCount(gomock.Any(), 47165).Return(0, errors.New("jira down"))
				m.EXPECT().FilterFieldSum(gomock.Any(), 47875, "customfield_18131").Return(1.0, nil)
				m.EXPECT().FilterFieldSum(gomock.Any(), 50374, "customfield_11332").Return(2.0, nil)
				m.EXPECT().SprintVelocity(gomock.Any(), int64(70), `^xs-ring3\s.+`, 3).
					Return(0.0, app.UnavailableError("authorization failed"))
			},
			setupHost: func(m *mock.MockCodeHost) {
				m.EXPECT().OpenPullRequestCount(gomock.Any(), "xapi-project", "xen-api").Return(7, nil)
				m.EXPECT().OpenIssueCount(gomock.Any(), "xapi-project", "xen-api", "bug").Return(2, nil)
			},
			wantSeries: []string{
				"CA,priority=QRF",
				"backlog_depth",
				"dc_inbox",
				"github_open_bugs,repo=xapi",
				"github_open_prs,repo=xapi",
			},
		},
		{
			name: "velocity without data never written",
			setupTracker: func(m *mock.MockBugTracker) {
				m.EXPECT().FilterCount(gomock.Any(), gomock.Any()).Return(1, nil).Times(2)
				m.EXPECT().FilterFieldSum(gomock.Any(), gomock.Any(), gomock.Any()).Return(1.0, nil).Times(2)
				m.EXPECT().SprintVelocity(gomock.Any(), int64(70), `^xs-ring3\s.+`, 3).
					Return(math.NaN(), nil)
			},
			setupHost: func(m *mock.MockCodeHost) {
				m.EXPECT().OpenPullRequestCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
				m.EXPECT().OpenIssueCount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
			},
			wantSeries: []string{
				"CA,priority=Blocker",
				"CA,priority=QRF",
				"backlog_depth",
				"dc_inbox",
				"github_open_bugs,repo=xapi",
				"github_open_prs,repo=xapi",
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			tracker := mock.NewMockBugTracker(ctrl)
			host := mock.NewMockCodeHost(ctrl)
			if tt.setupTracker != nil {
				tt.setupTracker(tracker)
			}
			if tt.setupHost != nil {
				tt.setupHost(host)
			}

			s := app.NewService(metrics, tracker, host, nil, nil, 4, logrus.New())
			samples, err := s.Collect(context.Background())
			require.NoError(t, err)

			gotSeries := make([]string, 0, len(samples))
			for _, smp := range samples {
				gotSeries = append(gotSeries, smp.Series)
			}
			assert.Equal(t, tt.wantSeries, gotSeries)

			for series, want := range tt.wantValues {
				for _, smp := range samples {
					if smp.Series == series {
						assert.InDelta(t, want, smp.Value, 1e-9, "series %s", series)
					}
				}
			}

			// One timestamp per cycle.
			for _, smp := range samples {
				assert.Equal(t, samples[0].Time, smp.Time)
			}
		})
	}
}

func TestServiceCollectEmptyMetricSet(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := mock.NewMockSampleWriter(ctrl)

	s := app.NewService(app.MetricSet{}, nil, nil, writer, nil, 4, logrus.New())
	require.NoError(t, s.CollectAndStore(context.Background()))
	assert.Empty(t, s.LastSamples())
}

func TestServiceCollectAndStore(t *testing.T) {
	t.Parallel()

	metrics := app.MetricSet{
		CountFilters: map[string]int{"dc_inbox": 47168},
	}

	t.Run("write ok drains spool", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tracker := mock.NewMockBugTracker(ctrl)
		tracker.EXPECT().FilterCount(gomock.Any(), 47168).Return(5, nil)

		writer := mock.NewMockSampleWriter(ctrl)
		writer.EXPECT().Write(gomock.Any(), gomock.Len(1)).Return(nil)

		spool := mock.NewMockSampleSpool(ctrl)
		spool.EXPECT().Drain(gomock.Any(), gomock.Any()).Return(nil)

		s := app.NewService(metrics, tracker, nil, writer, spool, 4, logrus.New())
		require.NoError(t, s.CollectAndStore(context.Background()))

		last := s.LastSamples()
		require.Len(t, last, 1)
		assert.Equal(t, "dc_inbox", last[0].Series)
		assert.Equal(t, 5.0, last[0].Value)
	})

	t.Run("write failure spools the batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tracker := mock.NewMockBugTracker(ctrl)
		tracker.EXPECT().FilterCount(gomock.Any(), 47168).Return(5, nil)

		writer := mock.NewMockSampleWriter(ctrl)
		writer.EXPECT().Write(gomock.Any(), gomock.Any()).Return(errors.New("influx down"))

		spool := mock.NewMockSampleSpool(ctrl)
		spool.EXPECT().Add(gomock.Len(1)).Return(nil)

		s := app.NewService(metrics, tracker, nil, writer, spool, 4, logrus.New())
		err := s.CollectAndStore(context.Background())
		require.Error(t, err)

		// Failed write still refreshes the last collected batch.
		assert.Len(t, s.LastSamples(), 1)
	})
}
