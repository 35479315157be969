// Package metrics: prometheus-метрики движка и admin API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zenazn/goji/web/mutil"

	"tg_giftbuyer/internal/domain/entity"
)

const namespace = "giftbuyer"

var (
	CyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cycles_total",
		Help:      "Engine cycles by result",
	}, []string{"result"})

	PurchasesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchase_attempts_total",
		Help:      "Purchase attempts by outcome",
	}, []string{"outcome"})

	StarsSpent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stars_spent_total",
		Help:      "Stars spent on confirmed purchases",
	})

	Balance = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "balance_stars",
		Help:      "Last observed stars balance",
	})

	QueueLength = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_length",
		Help:      "Recipients waiting in the allocation queue",
	})

	Paused = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "paused",
		Help:      "1 when the engine is paused",
	})

	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cycle_duration_seconds",
		Help:      "Engine cycle duration",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Admin API requests",
	}, []string{"method", "route", "status"})
)

// Cycle results.
const (
	ResultIdle        = "idle"
	ResultPaused      = "paused"
	ResultFetchFailed = "fetch_failed"
	ResultNoCandidate = "no_candidate"
	ResultQueueEmpty  = "queue_empty"
	ResultUnresolved  = "unresolved"
	ResultPurchased   = "purchased"
	ResultPanic       = "panic"
)

// ObserveAttempt учитывает попытку покупки. Подходит как purchase.Observer.
func ObserveAttempt(attempt entity.PurchaseAttempt) {
	PurchasesTotal.WithLabelValues(string(attempt.Outcome)).Inc()

	if attempt.Outcome == entity.OutcomeSucceeded {
		StarsSpent.Add(float64(attempt.QuotedPrice))
	}
}

// Middleware считает запросы admin API. Метка route: шаблон chi.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := mutil.WrapWriter(w)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Name:      "http_request_duration_seconds",
	Help:      "Admin API request duration",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
}, []string{"method", "route"})
