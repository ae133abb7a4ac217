package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/medicare/internal/metrics"
	"github.com/hitoshi/medicare/internal/middleware"
	"github.com/hitoshi/medicare/internal/model"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	TokenVerifier     middleware.TokenVerifier
	Metrics           metrics.MetricsCollector
	MetricsGatherer   prometheus.Gatherer

	// ヘルスチェック（nilの場合は常に200）
	HealthChecker HealthChecker

	// サービス
	AuthService        AuthServiceInterface
	DoctorService      DoctorServiceInterface
	AppointmentService AppointmentServiceInterface
	ContactService     ContactServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → Metrics → SecurityHeaders → CORS → (Auth)
//
// Authミドルウェアは予約一覧（GET /api/appointments）にのみ適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	collector := deps.Metrics
	if collector == nil {
		collector = metrics.Nop{}
	}

	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(collector))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteErrorResponse(w, http.StatusNotFound, &model.APIError{
			Code:     "NOT_FOUND",
			Message:  "Not found",
			Category: "system",
			Action:   "Check the request path.",
		})
	})

	authHandler := NewAuthHandler(deps.AuthService)
	doctorHandler := NewDoctorHandler(deps.DoctorService)
	appointmentHandler := NewAppointmentHandler(deps.AppointmentService)
	contactHandler := NewContactHandler(deps.ContactService)

	// --- 運用エンドポイント ---
	r.Get("/health", NewHealthHandler(deps.HealthChecker))
	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	r.Route("/api", func(r chi.Router) {
		// --- 認証不要のルート ---
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Get("/doctors", doctorHandler.ListDoctors)
		r.Post("/appointments", appointmentHandler.CreateAppointment)
		r.Post("/contact", contactHandler.SubmitContact)

		// --- 認証が必要なルート ---
		r.With(middleware.NewAuthMiddleware(deps.TokenVerifier, collector)).
			Get("/appointments", appointmentHandler.ListAppointments)
	})

	return r
}
