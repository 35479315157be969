package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"tg_giftbuyer/internal/domain/entity"
	"tg_giftbuyer/internal/metrics"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	rq := require.New(t)

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/v1/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/v1/items/{id}", "418"))

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/items/"+id, http.NoBody))
		rq.Equal(http.StatusTeapot, rec.Code)
	}

	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/v1/items/{id}", "418"))
	rq.Equal(before+2, after)
}

func TestObserveAttempt(t *testing.T) {
	rq := require.New(t)

	spent := testutil.ToFloat64(metrics.StarsSpent)
	succeeded := testutil.ToFloat64(metrics.PurchasesTotal.WithLabelValues(string(entity.OutcomeSucceeded)))
	mismatched := testutil.ToFloat64(metrics.PurchasesTotal.WithLabelValues(string(entity.OutcomePriceMismatch)))

	metrics.ObserveAttempt(entity.PurchaseAttempt{ListingID: 1, QuotedPrice: 25, Outcome: entity.OutcomeSucceeded})
	metrics.ObserveAttempt(entity.PurchaseAttempt{ListingID: 1, QuotedPrice: 30, Outcome: entity.OutcomePriceMismatch})

	rq.Equal(spent+25, testutil.ToFloat64(metrics.StarsSpent))
	rq.Equal(succeeded+1, testutil.ToFloat64(metrics.PurchasesTotal.WithLabelValues(string(entity.OutcomeSucceeded))))
	rq.Equal(mismatched+1, testutil.ToFloat64(metrics.PurchasesTotal.WithLabelValues(string(entity.OutcomePriceMismatch))))
}
