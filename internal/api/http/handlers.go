package http

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/euanh/inforad/internal/app"
)

//go:generate mockgen -destination mock/service.go -package mock -mock_names Service=MockService . Service

// Service provides collected samples and can trigger a collection cycle.
type Service interface {
	CollectAndStore(ctx context.Context) error
	LastSamples() []app.Sample
}

type sample struct {
	Series string  `json:"series"`
	Value  float64 `json:"value"`
	Time   string  `json:"time"`
}

type samplesResponse struct {
	Samples []sample `json:"samples"`
}

func newSamplesResponse(samples []app.Sample) samplesResponse {
	ss := make([]sample, 0, len(samples))
	for _, s := range samples {
		ss = append(ss, sample{
			Series: s.Series,
			Value:  s.Value,
			Time:   s.Time.UTC().Format(time.RFC3339),
		})
	}

	return samplesResponse{Samples: ss}
}

// NewHealthHandler creates handlerfunc reporting process liveness.
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

// NewSamplesHandler creates handlerfunc returning samples from the last
// collection cycle.
func NewSamplesHandler(service Service, l logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		response := newSamplesResponse(service.LastSamples())

		w.Header().Set("Content-type", "application/json; charset=utf-8")
		if err := jsoniter.ConfigFastest.NewEncoder(w).Encode(response); err != nil {
			l.Errorf("couldn't encode samples response: %v", err)
		}
	}
}

// NewCollectHandler creates handlerfunc triggering a collection cycle.
func NewCollectHandler(service Service, l logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err := service.CollectAndStore(r.Context()); err != nil {
			l.Errorf("collection cycle failed: %v", err)

			if app.IsTooManyRequestsError(err) {
				http.Error(w, err.Error(), http.StatusTooManyRequests)
				return
			}

			http.Error(w, "", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
