package http

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// NewMux creates router for app's http server.
func NewMux(service Service, timeout time.Duration, l logrus.FieldLogger) *http.ServeMux {
	timeoutMiddleware := NewTimeoutMiddleware(timeout)

	m := http.NewServeMux()
	m.HandleFunc("/healthz", NewHealthHandler())
	m.HandleFunc("/samples", timeoutMiddleware(NewSamplesHandler(service, l)))
	m.HandleFunc("/collect", timeoutMiddleware(NewCollectHandler(service, l)))

	return m
}
