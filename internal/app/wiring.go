package app

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/hitoshi/medicare/internal/appointment"
	"github.com/hitoshi/medicare/internal/auth"
	"github.com/hitoshi/medicare/internal/config"
	"github.com/hitoshi/medicare/internal/contact"
	"github.com/hitoshi/medicare/internal/doctor"
	"github.com/hitoshi/medicare/internal/handler"
	"github.com/hitoshi/medicare/internal/metrics"
	"github.com/hitoshi/medicare/internal/repository"
	"github.com/hitoshi/medicare/internal/security"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// repositories はアプリケーションが使うリポジトリ一式。
type repositories struct {
	users        repository.UserRepository
	doctors      repository.DoctorRepository
	appointments repository.AppointmentRepository
	contacts     repository.ContactRepository
}

func newPostgresRepositories(db *sql.DB) repositories {
	return repositories{
		users:        repository.NewPostgresUserRepo(db),
		doctors:      repository.NewPostgresDoctorRepo(db),
		appointments: repository.NewPostgresAppointmentRepo(db),
		contacts:     repository.NewPostgresContactRepo(db),
	}
}

// application はワイヤリング済みのルーターと、起動・停止処理で使うサービスを保持する。
type application struct {
	router       http.Handler
	doctors      *doctor.Service
	appointments *appointment.Service
}

// newRegistry はGo runtimeとプロセスのメトリクスを登録したレジストリを返す。
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// newApplication は設定とリポジトリから全サービスとルーターを組み立てる。
func newApplication(
	cfg *config.Config,
	repos repositories,
	health handler.HealthChecker,
	reg *prometheus.Registry,
	logger *slog.Logger,
) *application {
	collector := metrics.NewCollector(reg)
	sanitizer := security.NewTextSanitizer()

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	authService := auth.NewService(repos.users, tokens, collector, auth.ServiceConfig{
		BcryptCost: cfg.BcryptCost,
	})

	doctorService := doctor.NewService(repos.doctors)
	resolver := doctor.NewResolver(repos.doctors, collector)

	// 型付きnilをインターフェースに入れないよう、無効時はnilのままにする
	var exporter appointment.Exporter
	if cfg.AppointmentExportPath != "" {
		exporter = appointment.NewFileExporter(cfg.AppointmentExportPath)
	}
	appointmentService := appointment.NewService(repos.appointments, resolver, sanitizer, exporter, collector)

	contactService := contact.NewService(repos.contacts, sanitizer)

	router := handler.NewRouter(&handler.RouterDeps{
		Logger:            logger,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		TokenVerifier:     tokens,
		Metrics:           collector,
		MetricsGatherer:   reg,
		HealthChecker:     health,

		AuthService:        authService,
		DoctorService:      doctorService,
		AppointmentService: appointmentService,
		ContactService:     contactService,
	})

	return &application{
		router:       router,
		doctors:      doctorService,
		appointments: appointmentService,
	}
}
