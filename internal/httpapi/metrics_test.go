package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObservePrediction(t *testing.T) {
	c := predictionsTotal.WithLabelValues(ifaceForm, "RECHAZADO")
	before := testutil.ToFloat64(c)
	observePrediction(ifaceForm, "RECHAZADO", 0.25)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("predictions_total = %v, want %v", got, before+1)
	}
}

func TestObservePredictionError(t *testing.T) {
	c := predictionErrorsTotal.WithLabelValues(ifaceJSON, "422")
	before := testutil.ToFloat64(c)
	observePredictionError(ifaceJSON, 422)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("prediction_errors_total = %v, want %v", got, before+1)
	}
}

// A bad JSON body is counted against the json interface with its status.
func TestPredictHandler_CountsErrors(t *testing.T) {
	c := predictionErrorsTotal.WithLabelValues(ifaceJSON, "400")
	before := testutil.ToFloat64(c)
	w := postJSON(NewMux(&mockService{}, ModeAPI), `{"A3":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("prediction_errors_total{json,400} = %v, want %v", got, before+1)
	}
}

// Request metrics are labelled with the matched route, not the raw URL.
func TestMetricsMiddleware_LabelsRoutePattern(t *testing.T) {
	c := httpRequestsTotal.WithLabelValues("/predict", http.MethodPost, "200")
	before := testutil.ToFloat64(c)

	w := postJSON(NewMux(&mockService{class: 1, prob: 0.6}, ModeAPI), `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("requests_total{/predict,POST,200} = %v, want %v", got, before+1)
	}
}

func TestMetricsMiddleware_UnmatchedFallsBackToPath(t *testing.T) {
	c := httpRequestsTotal.WithLabelValues("/nope", http.MethodGet, "404")
	before := testutil.ToFloat64(c)

	w := httptest.NewRecorder()
	NewMux(&mockService{}, ModeAPI).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("requests_total{/nope,GET,404} = %v, want %v", got, before+1)
	}
	if testutil.ToFloat64(httpInflight) != 0 {
		t.Fatalf("inflight gauge not released")
	}
}
