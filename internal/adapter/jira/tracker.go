package jira

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/euanh/inforad/internal/app"
)

// Tracker implements app.BugTracker on top of the low level api.
type Tracker struct {
	api API
}

var _ app.BugTracker = &Tracker{}

// NewTracker creates new Tracker instance.
func NewTracker(api API) *Tracker {
	return &Tracker{api: api}
}

// FilterCount returns the number of issues matching a saved filter.
func (t *Tracker) FilterCount(ctx context.Context, filterID int) (int, error) {
	jql, err := t.api.FilterJQL(ctx, filterID)
	if err != nil {
		return 0, errors.Wrapf(err, "resolving filter %d", filterID)
	}

	total, err := t.api.SearchTotal(ctx, jql)
	if err != nil {
		return 0, errors.Wrapf(err, "counting filter %d issues", filterID)
	}

	return total, nil
}

// FilterFieldSum sums a numeric issue field over a saved filter.
func (t *Tracker) FilterFieldSum(ctx context.Context, filterID int, fieldID string) (float64, error) {
	jql, err := t.api.FilterJQL(ctx, filterID)
	if err != nil {
		return 0, errors.Wrapf(err, "resolving filter %d", filterID)
	}

	sum, err := t.api.SearchFieldSum(ctx, jql, fieldID)
	if err != nil {
		return 0, errors.Wrapf(err, "summing field %s over filter %d", fieldID, filterID)
	}

	return sum, nil
}

// SprintVelocity returns the mean completed estimate over the last window
// closed sprints whose names match nameRegexp. Sprints without a completed
// estimate in their report are skipped. Returns NaN when no sprint in the
// window has an estimate.
func (t *Tracker) SprintVelocity(ctx context.Context, boardID int64, nameRegexp string, window int) (float64, error) {
	if window <= 0 {
		return 0, app.InvalidRequestError("velocity window must be greater than zero")
	}

	var re *regexp.Regexp
	if nameRegexp != "" {
		var err error
		re, err = regexp.Compile(nameRegexp)
		if err != nil {
			return 0, errors.Wrap(err, "compiling sprint name regexp")
		}
	}

	sprints, err := t.api.ClosedSprints(ctx, boardID)
	if err != nil {
		return 0, errors.Wrapf(err, "listing board %d sprints", boardID)
	}

	completed := make([]Sprint, 0, len(sprints))
	for _, s := range sprints {
		if !strings.EqualFold(s.State, "closed") {
			continue
		}
		if re != nil && !re.MatchString(s.Name) {
			continue
		}
		completed = append(completed, s)
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].ID > completed[j].ID
	})
	if len(completed) > window {
		completed = completed[:window]
	}

	var sum float64
	var n int
	for _, s := range completed {
		est, err := t.api.SprintCompletedEstimate(ctx, boardID, s.ID)
		if errors.Is(err, ErrNoEstimate) {
			continue
		}
		if err != nil {
			return 0, errors.Wrapf(err, "fetching sprint %d report", s.ID)
		}
		sum += est
		n++
	}
	if n == 0 {
		return math.NaN(), nil
	}

	return sum / float64(n), nil
}
