// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 医師解決の方法を表すラベル値。
const (
	ResolveByID       = "id"
	ResolveByName     = "name"
	ResolveNotFound   = "not_found"
	AuthOutcomeOK     = "success"
	AuthOutcomeFailed = "failure"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層やミドルウェアから利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordAuth(operation, outcome string)
	RecordDoctorResolution(method string)
	RecordAppointmentCreated()
	RecordExportFailure()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus          *prometheus.CounterVec
	requestLatency      prometheus.Histogram
	authTotal           *prometheus.CounterVec
	doctorResolutions   *prometheus.CounterVec
	appointmentsCreated prometheus.Counter
	exportFailures      prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medicare_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "medicare_http_request_duration_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		authTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medicare_auth_total",
			Help: "認証操作の結果別の合計数",
		}, []string{"operation", "outcome"}),
		doctorResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medicare_doctor_resolutions_total",
			Help: "医師参照の解決方法別の合計数",
		}, []string{"method"}),
		appointmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "medicare_appointments_created_total",
			Help: "作成された予約の合計数",
		}),
		exportFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "medicare_appointment_export_failures_total",
			Help: "予約ミラーファイル書き出し失敗の合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.authTotal,
		c.doctorResolutions,
		c.appointmentsCreated,
		c.exportFailures,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理時間を記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordAuth は認証操作（signup, login, verify）の結果を記録する。
func (c *Collector) RecordAuth(operation, outcome string) {
	c.authTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordDoctorResolution は医師参照の解決方法を記録する。
func (c *Collector) RecordDoctorResolution(method string) {
	c.doctorResolutions.WithLabelValues(method).Inc()
}

// RecordAppointmentCreated は予約作成を記録する。
func (c *Collector) RecordAppointmentCreated() {
	c.appointmentsCreated.Inc()
}

// RecordExportFailure はミラーファイル書き出しの失敗を記録する。
func (c *Collector) RecordExportFailure() {
	c.exportFailures.Inc()
}

// Nop は何も記録しないMetricsCollector。
type Nop struct{}

func (Nop) RecordHTTPStatus(int) {}

func (Nop) RecordRequestLatency(time.Duration) {}

func (Nop) RecordAuth(string, string) {}

func (Nop) RecordDoctorResolution(string) {}

func (Nop) RecordAppointmentCreated() {}

func (Nop) RecordExportFailure() {}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

var (
	_ MetricsCollector = (*Collector)(nil)
	_ MetricsCollector = Nop{}
)
