package main

import (
	"context"
	netHttp "net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"github.com/euanh/inforad/internal/adapter/github"
	"github.com/euanh/inforad/internal/adapter/influx"
	"github.com/euanh/inforad/internal/adapter/jira"
	"github.com/euanh/inforad/internal/api/http"
	"github.com/euanh/inforad/internal/api/http/limiter"
	"github.com/euanh/inforad/internal/app"
	"github.com/euanh/inforad/internal/database"
	"github.com/euanh/inforad/internal/grafana"
	"github.com/euanh/inforad/internal/scheduler"
)

func main() {
	l := logrus.New()

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		l.Fatalf("couldn't parse config: %v", err)
	}

	level, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		l.Fatalf("couldn't parse log level: %v", err)
	}
	l.Level = level

	httpClient := &netHttp.Client{
		Timeout: 30 * time.Second,
	}

	kvStore, err := database.NewBoltKVStore(
		conf.SpoolDBPath,
		conf.SpoolDBBucketName,
	)
	if err != nil {
		l.Fatalf("couldn't create bolt kv store: %v", err)
	}
	defer kvStore.Close()
	spool := influx.NewSpool(
		kvStore,
		conf.SpoolDataTTL,
		l.WithField("component", "spool"),
	)

	writer := influx.NewWriter(
		httpClient,
		conf.InfluxAddress,
		conf.InfluxDatabase,
		conf.InfluxUsername,
		conf.InfluxPassword,
	)

	jiraClient := jira.NewClient(
		limiter.NewHTTPDoer(httpClient, conf.JiraAPIRateLimit),
		conf.JiraAPIAddress,
		conf.JiraAPIToken,
		conf.JiraAPIUser,
		conf.JiraAPIPassword,
	)
	jiraAPI, err := jira.NewCachedAPI(
		jiraClient,
		conf.JiraFilterCacheSize,
		conf.JiraFilterCacheTTL,
	)
	if err != nil {
		l.Fatalf("couldn't create jira api cache: %v", err)
	}
	tracker := jira.NewTracker(jiraAPI)

	githubClient := github.NewClient(
		limiter.NewHTTPDoer(httpClient, conf.GithubAPIRateLimit),
		conf.GithubAPIAddress,
		conf.GithubAPIToken,
	)

	metrics := newMetricSet(conf)
	service := app.NewService(
		metrics,
		tracker,
		githubClient,
		writer,
		spool,
		conf.MaxConcurrency,
		l.WithField("component", "service"),
	)

	if conf.ProvisionGrafanaDashboard {
		grafanaClient := grafana.NewClient(
			httpClient,
			conf.GrafanaAddress,
			conf.GrafanaAPIToken,
		)
		dashboard := grafana.NewDashboard(
			conf.GrafanaDashboardTitle,
			conf.GrafanaDatasource,
			metricSeries(metrics),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := grafanaClient.ImportDashboard(ctx, dashboard); err != nil {
			l.Errorf("couldn't provision grafana dashboard: %v", err)
		}
		cancel()
	}

	sched, err := scheduler.NewScheduler(
		service,
		conf.CronSpec,
		conf.CollectTimeout,
		l.WithField("component", "scheduler"),
	)
	if err != nil {
		l.Fatalf("couldn't create scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if conf.CollectOnStart {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), conf.CollectTimeout)
			defer cancel()
			if err := service.CollectAndStore(ctx); err != nil {
				l.Errorf("startup collection cycle failed: %v", err)
			}
		}()
	}

	mux := http.NewMux(service, conf.HTTPHandlerTimeout, l.WithField("component", "mux"))
	server := http.NewServer(
		conf.HTTPServerAddress,
		conf.HTTPProfileServerAddress,
		mux,
		l.WithField("component", "httpServer"),
	)
	server.Run()
}
