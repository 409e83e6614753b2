package main

import (
	"net/http"
	"strconv"

	"crbklasemen/pkg/session"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "klasemen", Name: "http_requests_total", Help: "Served HTTP requests",
	}, []string{"method", "route", "status"})
	importedRows = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "klasemen", Name: "import_rows_total", Help: "Klasemen rows created by CSV import",
	})
	importFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "klasemen", Name: "import_failures_total", Help: "CSV imports stopped by a failing line",
	})
	sessionEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "klasemen", Name: "session_events_total", Help: "Session state transitions",
	}, []string{"state", "reason"})
	liveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "klasemen", Name: "live_sessions", Help: "Sessions signed in and not yet signed out",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, importedRows, importFailures, sessionEvents, liveSessions)
}

func metricsHandler() http.Handler { return promhttp.Handler() }

// observeSessions feeds session transitions into the counters.
func observeSessions(tr *session.Tracker) func(session.Event) {
	return func(ev session.Event) {
		sessionEvents.WithLabelValues(ev.State.String(), ev.Reason).Inc()
		liveSessions.Set(float64(tr.Live()))
	}
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
