package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/medicare/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsMiddleware_RecordsStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	handler := NewMetricsMiddleware(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/appointments", nil))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	var statusCount, latencyCount float64
	for _, mf := range families {
		switch mf.GetName() {
		case "medicare_http_status_total":
			for _, m := range mf.GetMetric() {
				if m.GetLabel()[0].GetValue() == "400" {
					statusCount = m.GetCounter().GetValue()
				}
			}
		case "medicare_http_request_duration_seconds":
			latencyCount = float64(mf.GetMetric()[0].GetHistogram().GetSampleCount())
		}
	}
	if statusCount != 1 {
		t.Errorf("status 400 count = %v, want 1", statusCount)
	}
	if latencyCount != 1 {
		t.Errorf("latency samples = %v, want 1", latencyCount)
	}
}
