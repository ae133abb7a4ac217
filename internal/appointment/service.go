// Package appointment は診察予約の作成・一覧と、予約一覧のファイルミラーを提供する。
package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/medicare/internal/metrics"
	"github.com/hitoshi/medicare/internal/model"
	"github.com/hitoshi/medicare/internal/repository"
	"github.com/hitoshi/medicare/internal/security"
)

// exportTimeout はミラーファイル書き出し1回あたりの上限時間。
const exportTimeout = 30 * time.Second

// DoctorResolver は医師参照文字列を医師レコードに解決するインターフェース。
type DoctorResolver interface {
	Resolve(ctx context.Context, ref string) (*model.Doctor, error)
}

// Exporter は予約一覧を外部に書き出すインターフェース。
type Exporter interface {
	Write(appointments []model.AppointmentWithDoctor) error
}

// Service は予約に関するビジネスロジックを提供する。
type Service struct {
	repo      repository.AppointmentRepository
	resolver  DoctorResolver
	sanitizer security.TextSanitizer
	exporter  Exporter
	metrics   metrics.MetricsCollector
	now       func() time.Time
	exports   sync.WaitGroup
	// exportMu は一覧の取得から書き出しまでを直列化し、古い一覧による上書きを防ぐ
	exportMu sync.Mutex
}

// NewService はServiceを生成する。exporterがnilの場合はミラーを行わない。
func NewService(
	repo repository.AppointmentRepository,
	resolver DoctorResolver,
	sanitizer security.TextSanitizer,
	exporter Exporter,
	collector metrics.MetricsCollector,
) *Service {
	if collector == nil {
		collector = metrics.Nop{}
	}
	return &Service{
		repo:      repo,
		resolver:  resolver,
		sanitizer: sanitizer,
		exporter:  exporter,
		metrics:   collector,
		now:       time.Now,
	}
}

// Create は入力を検証し、医師を解決してから予約を作成する。
// 作成後のミラー書き出しはレスポンスを待たせずにバックグラウンドで行い、失敗はログのみ。
func (s *Service) Create(ctx context.Context, input model.AppointmentInput) (*model.Appointment, error) {
	if input.Name == "" || input.Email == "" || input.Phone == "" ||
		input.Doctor == "" || input.Date == "" || input.Time == "" {
		return nil, model.NewMissingFieldsError()
	}

	date, err := time.Parse(model.DateLayout, input.Date)
	if err != nil {
		return nil, model.NewInvalidDateError(input.Date)
	}

	doctor, err := s.resolver.Resolve(ctx, input.Doctor)
	if err != nil {
		return nil, err
	}

	now := s.now()
	a := &model.Appointment{
		ID:         uuid.New().String(),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		DoctorID:   doctor.ID,
		Department: input.Department,
		Date:       date,
		Time:       input.Time,
		Message:    s.sanitize(input.Message),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.metrics.RecordAppointmentCreated()
	slog.Info("appointment created",
		slog.String("appointment_id", a.ID),
		slog.String("doctor_id", a.DoctorID),
	)

	s.exportAsync()
	return a, nil
}

// List は全予約を医師情報付きで新しい順に返す。
func (s *Service) List(ctx context.Context) ([]model.AppointmentWithDoctor, error) {
	list, err := s.repo.ListWithDoctor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return list, nil
}

// Wait は実行中のミラー書き出しの完了を待つ。シャットダウン時に使用する。
func (s *Service) Wait() {
	s.exports.Wait()
}

func (s *Service) sanitize(text string) string {
	if s.sanitizer == nil {
		return text
	}
	return s.sanitizer.Sanitize(text)
}

// exportAsync はリクエストのコンテキストから切り離してミラー書き出しを開始する。
func (s *Service) exportAsync() {
	if s.exporter == nil {
		return
	}
	s.exports.Add(1)
	go func() {
		defer s.exports.Done()

		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		if err := s.export(ctx); err != nil {
			s.metrics.RecordExportFailure()
			slog.Warn("appointment export failed", slog.String("error", err.Error()))
		}
	}()
}

// export は現在の全予約を読み直して書き出す。
func (s *Service) export(ctx context.Context) error {
	s.exportMu.Lock()
	defer s.exportMu.Unlock()

	list, err := s.repo.ListWithDoctor(ctx)
	if err != nil {
		return fmt.Errorf("failed to list appointments: %w", err)
	}
	return s.exporter.Write(list)
}
