package grafana

import (
	"fmt"
	"strings"
)

// Dashboard is the subset of the grafana dashboard model this tool
// provisions.
type Dashboard struct {
	Title         string    `json:"title"`
	Timezone      string    `json:"timezone"`
	SchemaVersion int       `json:"schemaVersion"`
	Refresh       string    `json:"refresh"`
	Time          TimeRange `json:"time"`
	Panels        []Panel   `json:"panels"`
}

// TimeRange is the dashboards default time window.
type TimeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Panel is a single graph panel.
type Panel struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	Datasource string   `json:"datasource"`
	GridPos    GridPos  `json:"gridPos"`
	Targets    []Target `json:"targets"`
}

// GridPos places a panel on the dashboard grid.
type GridPos struct {
	H int `json:"h"`
	W int `json:"w"`
	X int `json:"x"`
	Y int `json:"y"`
}

// Target is a raw influxql query feeding a panel.
type Target struct {
	RefID        string `json:"refId"`
	Query        string `json:"query"`
	RawQuery     bool   `json:"rawQuery"`
	ResultFormat string `json:"resultFormat"`
}

const (
	panelWidth  = 12
	panelHeight = 8
)

// NewDashboard builds a dashboard with one panel per measurement. Series
// keys sharing a measurement ("CA,priority=Blocker", "CA,priority=Major")
// become targets on the same panel.
func NewDashboard(title string, datasource string, seriesKeys []string) Dashboard {
	d := Dashboard{
		Title:         title,
		Timezone:      "browser",
		SchemaVersion: 16,
		Refresh:       "5m",
		Time: TimeRange{
			From: "now-30d",
			To:   "now",
		},
	}

	var order []string
	grouped := make(map[string][]string)
	for _, key := range seriesKeys {
		measurement, _ := parseSeriesKey(key)
		if measurement == "" {
			continue
		}
		if _, ok := grouped[measurement]; !ok {
			order = append(order, measurement)
		}
		grouped[measurement] = append(grouped[measurement], key)
	}

	for i, measurement := range order {
		panel := Panel{
			ID:         i + 1,
			Title:      measurement,
			Type:       "graph",
			Datasource: datasource,
			GridPos: GridPos{
				H: panelHeight,
				W: panelWidth,
				X: (i % 2) * panelWidth,
				Y: (i / 2) * panelHeight,
			},
		}
		for j, key := range grouped[measurement] {
			panel.Targets = append(panel.Targets, Target{
				RefID:        refID(j),
				Query:        seriesQuery(key),
				RawQuery:     true,
				ResultFormat: "time_series",
			})
		}
		d.Panels = append(d.Panels, panel)
	}

	return d
}

// seriesQuery renders an influxql query selecting one series.
func seriesQuery(seriesKey string) string {
	measurement, tags := parseSeriesKey(seriesKey)

	var b strings.Builder
	fmt.Fprintf(&b, `SELECT "value" FROM %q WHERE `, measurement)
	for _, tag := range tags {
		fmt.Fprintf(&b, `%q = '%s' AND `, tag[0], tag[1])
	}
	b.WriteString("$timeFilter")

	return b.String()
}

// parseSeriesKey splits a line-protocol series key into measurement and
// tags, honouring backslash escapes.
func parseSeriesKey(key string) (string, [][2]string) {
	parts := splitUnescaped(key, ',')
	if len(parts) == 0 {
		return "", nil
	}

	measurement := unescape(parts[0])
	var tags [][2]string
	for _, p := range parts[1:] {
		kv := splitUnescaped(p, '=')
		if len(kv) != 2 {
			continue
		}
		tags = append(tags, [2]string{unescape(kv[0]), unescape(kv[1])})
	}

	return measurement, tags
}

func splitUnescaped(s string, sep byte) []string {
	var parts []string
	var cur strings.Builder
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			cur.WriteByte('\\')
			cur.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == sep:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if escaped {
		cur.WriteByte('\\')
	}
	parts = append(parts, cur.String())

	return parts
}

func unescape(s string) string {
	r := strings.NewReplacer(`\,`, ",", `\=`, "=", `\ `, " ")

	return r.Replace(s)
}

func refID(i int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if i < len(letters) {
		return string(letters[i])
	}

	return fmt.Sprintf("T%d", i)
}
