// Package contact はお問い合わせの受付を提供する。
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/medicare/internal/model"
	"github.com/hitoshi/medicare/internal/repository"
	"github.com/hitoshi/medicare/internal/security"
)

// Input はお問い合わせの入力値。Phoneは任意。
type Input struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Service はお問い合わせの受付処理を提供する。
type Service struct {
	repo      repository.ContactRepository
	sanitizer security.TextSanitizer
	now       func() time.Time
}

// NewService はServiceを生成する。
func NewService(repo repository.ContactRepository, sanitizer security.TextSanitizer) *Service {
	return &Service{repo: repo, sanitizer: sanitizer, now: time.Now}
}

// Submit はお問い合わせを検証して保存する。
// メッセージはタグを除去した上で保存し、除去後に空になった場合は必須項目不足として扱う。
func (s *Service) Submit(ctx context.Context, input Input) (*model.Contact, error) {
	message := input.Message
	if s.sanitizer != nil {
		message = s.sanitizer.Sanitize(message)
	}
	if input.Name == "" || input.Email == "" || message == "" {
		return nil, model.NewMissingFieldsError()
	}

	c := &model.Contact{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	slog.Info("contact submitted", slog.String("contact_id", c.ID))
	return c, nil
}
