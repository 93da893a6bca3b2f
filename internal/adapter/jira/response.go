package jira

type filterResponse struct {
	ID  string `json:"id"`
	JQL string `json:"jql"`
}

type searchResponse struct {
	StartAt    int           `json:"startAt"`
	MaxResults int           `json:"maxResults"`
	Total      int           `json:"total"`
	Issues     []searchIssue `json:"issues"`
}

type searchIssue struct {
	Key string `json:"key"`
	// Only the requested numeric field is ever asked for, so all present
	// values decode as floats. Null fields decode as nil.
	Fields map[string]*float64 `json:"fields"`
}

// FieldSum sums given field over the page, ignoring null values.
func (r searchResponse) FieldSum(fieldID string) float64 {
	var sum float64
	for _, issue := range r.Issues {
		if v := issue.Fields[fieldID]; v != nil {
			sum += *v
		}
	}

	return sum
}

type sprintsResponse struct {
	MaxResults int           `json:"maxResults"`
	StartAt    int           `json:"startAt"`
	IsLast     bool          `json:"isLast"`
	Values     []sprintValue `json:"values"`
}

type sprintValue struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

func (r sprintsResponse) ToSprints() []Sprint {
	ss := make([]Sprint, 0, len(r.Values))
	for _, v := range r.Values {
		ss = append(ss, Sprint{
			ID:    v.ID,
			Name:  v.Name,
			State: v.State,
		})
	}

	return ss
}

type sprintReportResponse struct {
	Contents sprintReportContents `json:"contents"`
}

type sprintReportContents struct {
	CompletedIssuesEstimateSum sprintReportEstimate `json:"completedIssuesEstimateSum"`
}

type sprintReportEstimate struct {
	Value *float64 `json:"value"`
}
