package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FilterTable maps time-series keys to saved filter ids. Series keys may
// contain commas and equal signs, so entries are separated with ';' and the
// filter id follows the last ':'.
type FilterTable map[string]int

// Decode implements envconfig.Decoder.
func (t *FilterTable) Decode(value string) error {
	table := make(FilterTable)
	for _, entry := range strings.Split(value, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		i := strings.LastIndex(entry, ":")
		if i < 1 || i == len(entry)-1 {
			return fmt.Errorf("invalid filter table entry: %q", entry)
		}
		id, err := strconv.Atoi(entry[i+1:])
		if err != nil {
			return fmt.Errorf("invalid filter id in entry %q: %v", entry, err)
		}
		table[entry[:i]] = id
	}
	*t = table

	return nil
}

// Repo identifies a code host repository.
type Repo struct {
	Owner string
	Name  string
}

// RepoList is a ';' separated list of "owner/name" entries.
type RepoList []Repo

// Decode implements envconfig.Decoder.
func (l *RepoList) Decode(value string) error {
	var repos RepoList
	for _, entry := range strings.Split(value, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		owner, name, ok := strings.Cut(entry, "/")
		if !ok || owner == "" || name == "" {
			return fmt.Errorf("invalid repository entry: %q", entry)
		}
		repos = append(repos, Repo{Owner: owner, Name: name})
	}
	*l = repos

	return nil
}

// Config is the container for app configuration
type Config struct {
	// HTTPServerAddress - listen address for http server
	HTTPServerAddress string `default:"0.0.0.0:8080"`

	// HTTPProfileServerAddress - listen address for profiler http server. If empty, profiler server is disabled
	HTTPProfileServerAddress string `default:""`

	// HTTPHandlerTimeout - timeout for http handler execution
	HTTPHandlerTimeout time.Duration `default:"60s"`

	// LogLevel - logrus log level name
	LogLevel string `default:"info"`

	// CronSpec - cron expression for collection cycles
	CronSpec string `default:"*/10 * * * *"`

	// CollectTimeout - timeout for a single collection cycle
	CollectTimeout time.Duration `default:"5m"`

	// CollectOnStart - run one collection cycle immediately on startup
	CollectOnStart bool `default:"true"`

	// MaxConcurrency - maximum number of metrics evaluated in parallel
	MaxConcurrency int `default:"4"`

	// JiraAPIAddress - address for jira rest api with protocol
	JiraAPIAddress string `default:"https://jira.example.com"`

	// JiraAPIToken - bearer token for jira api. When empty, basic auth credentials are used
	JiraAPIToken string `default:""`

	// JiraAPIUser - basic auth user for jira api
	JiraAPIUser string `default:""`

	// JiraAPIPassword - basic auth password for jira api
	JiraAPIPassword string `default:""`

	// JiraAPIRateLimit - max frequency for jira rest api calls
	JiraAPIRateLimit float64 `default:"5"`

	// JiraFilterCacheSize - maximum number of elements in the filter jql cache
	JiraFilterCacheSize int `default:"1000"`

	// JiraFilterCacheTTL - maximum lifetime for filter jql cache entries
	JiraFilterCacheTTL time.Duration `default:"1h"`

	// JiraCountFilters - series key to filter id table for plain issue counts
	JiraCountFilters FilterTable `default:"dc_inbox:47168;CA,priority=Blocker:47165;CA,priority=Critical:47166;CA,priority=Major:47167;CA,priority=MinorAndTrivial:47876;CA,priority=Non-bug:48477;CA,workflow=Blocked:52664;SCTX:47170;XOP:47169;PAR:47171;Hotlist:47531;Staging:48797;FalconMustFix:57062"`

	// QRFSeries - series key for the qrf estimate gauge
	QRFSeries string `default:"CA,priority=QRF"`

	// QRFFilterID - filter id for the qrf estimate gauge
	QRFFilterID int `default:"47875"`

	// QRFFieldID - issue field summed for the qrf estimate gauge
	QRFFieldID string `default:"customfield_18131"`

	// QRFRound - decimal places kept for the qrf estimate gauge
	QRFRound int `default:"3"`

	// BacklogSeries - series key for the backlog depth gauge
	BacklogSeries string `default:"backlog_depth"`

	// BacklogFilterID - filter id for the backlog depth gauge
	BacklogFilterID int `default:"50374"`

	// BacklogFieldID - issue field summed for the backlog depth gauge
	BacklogFieldID string `default:"customfield_11332"`

	// BacklogRound - decimal places kept for the backlog depth gauge
	BacklogRound int `default:"2"`

	// BurndownSeries - series key for the sprint burndown gauge
	BurndownSeries string `default:"sprint_burndown"`

	// BurndownFilterID - filter id for the sprint burndown gauge
	BurndownFilterID int `default:"50375"`

	// BurndownFieldID - issue field summed for the sprint burndown gauge
	BurndownFieldID string `default:"customfield_11332"`

	// VelocitySeries - series key for the sprint velocity gauge
	VelocitySeries string `default:"sprint_velocity"`

	// VelocityBoardID - agile board id for the sprint velocity gauge
	VelocityBoardID int64 `default:"70"`

	// VelocitySprintRegexp - regexp matching sprint names counted for velocity
	VelocitySprintRegexp string `default:"^xs-ring3\\s.+"`

	// VelocityWindow - number of recent closed sprints averaged for velocity
	VelocityWindow int `default:"3"`

	// GithubAPIAddress - address for rest api with protocol
	GithubAPIAddress string `default:"https://api.github.com"`

	// GithubAPIToken - auth token for rest github api (optional, rate limit is lower without this token)
	GithubAPIToken string `default:""`

	// GithubAPIRateLimit - max frequency for github rest api calls
	GithubAPIRateLimit float64 `default:"0.5"`

	// GithubRepos - repositories polled for open pull request and bug counts
	GithubRepos RepoList `default:"xapi-project/xen-api"`

	// GithubBugLabel - issue label counted as bugs. If empty, issue counts are disabled
	GithubBugLabel string `default:"bug"`

	// InfluxAddress - address for influxdb http api with protocol
	InfluxAddress string `default:"http://localhost:8086"`

	// InfluxDatabase - influxdb database name
	InfluxDatabase string `default:"inforad"`

	// InfluxUsername - basic auth user for influxdb (optional)
	InfluxUsername string `default:""`

	// InfluxPassword - basic auth password for influxdb (optional)
	InfluxPassword string `default:""`

	// SpoolDBPath - filepath for bolt db holding unwritten sample batches
	SpoolDBPath string `default:"./inforad.data"`

	// SpoolDBBucketName - bolt db bucket name
	SpoolDBBucketName string `default:"spool"`

	// SpoolDataTTL - maximum lifetime for spooled sample batches
	SpoolDataTTL time.Duration `default:"24h"`

	// GrafanaAddress - address for grafana http api with protocol
	GrafanaAddress string `default:"http://localhost:3000"`

	// GrafanaAPIToken - bearer token for grafana http api
	GrafanaAPIToken string `default:""`

	// GrafanaDatasource - name of the influxdb datasource used by dashboard panels
	GrafanaDatasource string `default:"inforad"`

	// GrafanaDashboardTitle - title of the provisioned dashboard
	GrafanaDashboardTitle string `default:"Inforad"`

	// ProvisionGrafanaDashboard - create or update the dashboard on startup
	ProvisionGrafanaDashboard bool `default:"false"`
}
