package transport

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors recorded by Instrumented.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journy_http_requests_total",
				Help: "Total API requests by method and outcome",
			},
			[]string{"method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "journy_http_request_duration_seconds",
				Help:    "Duration of API requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "journy_http_requests_in_flight",
			Help: "API requests currently in flight",
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.requests, m.duration, m.inFlight} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Instrumented records request count, duration and in-flight requests.
type Instrumented struct {
	next    Transport
	metrics *Metrics
}

// NewInstrumented wraps next.
func NewInstrumented(metrics *Metrics, next Transport) *Instrumented {
	return &Instrumented{next: next, metrics: metrics}
}

// Send implements Transport.
func (i *Instrumented) Send(ctx context.Context, req *Request) (*Response, error) {
	method := string(req.Method())

	i.metrics.inFlight.Inc()
	start := time.Now()
	resp, err := i.next.Send(ctx, req)
	i.metrics.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	i.metrics.inFlight.Dec()

	i.metrics.requests.WithLabelValues(method, statusLabel(resp, err)).Inc()
	return resp, err
}

// statusLabel returns the status code, or "error" when no response was received.
func statusLabel(resp *Response, err error) string {
	var reqErr *RequestError
	switch {
	case errors.As(err, &reqErr):
		return strconv.Itoa(reqErr.StatusCode)
	case err != nil, resp == nil:
		return "error"
	default:
		return strconv.Itoa(resp.StatusCode)
	}
}
