package doctor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/medicare/internal/model"
	"github.com/hitoshi/medicare/internal/repository"
)

// Service は医師ディレクトリの参照と初期投入を提供する。
type Service struct {
	repo repository.DoctorRepository
	now  func() time.Time
}

// NewService はServiceを生成する。
func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List は全医師を返す。
func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// SeedIfEmpty は医師が1件も登録されていない場合のみ初期データを投入する。
// 投入した件数を返す。既に医師が存在する場合は0を返す。
func (s *Service) SeedIfEmpty(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	doctors := SeedDoctors(s.now())
	if err := s.repo.CreateMany(ctx, doctors); err != nil {
		return 0, fmt.Errorf("failed to seed doctors: %w", err)
	}

	slog.Info("seeded doctors", slog.Int("count", len(doctors)))
	return len(doctors), nil
}
