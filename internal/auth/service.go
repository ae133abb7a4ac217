// Package auth はパスワード認証とベアラートークンの発行・検証を提供する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/medicare/internal/metrics"
	"github.com/hitoshi/medicare/internal/model"
	"github.com/hitoshi/medicare/internal/repository"
)

// TokenIssuer はidentityからトークンを発行するインターフェース。
type TokenIssuer interface {
	Issue(identity model.Identity) (string, error)
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	BcryptCost int
}

// Result はサインアップ・ログイン成功時の結果。
type Result struct {
	User  *model.User
	Token string
}

// Service はユーザー登録とログインのビジネスロジックを提供する。
type Service struct {
	userRepo  repository.UserRepository
	tokens    TokenIssuer
	metrics   metrics.MetricsCollector
	cost      int
	dummyHash string
	now       func() time.Time
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	tokens TokenIssuer,
	collector metrics.MetricsCollector,
	config ServiceConfig,
) *Service {
	cost := config.BcryptCost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if collector == nil {
		collector = metrics.Nop{}
	}
	// 未登録メールでのログインでも比較処理を行うためのハッシュ
	dummyHash, err := HashPassword(uuid.NewString(), cost)
	if err != nil {
		slog.Error("failed to prepare dummy password hash", slog.String("error", err.Error()))
	}
	return &Service{
		userRepo:  userRepo,
		tokens:    tokens,
		metrics:   collector,
		cost:      cost,
		dummyHash: dummyHash,
		now:       time.Now,
	}
}

// Signup はユーザーを登録し、トークンを発行する。
// 既に同じメールアドレスが登録されている場合はEmailAlreadyRegisteredエラーを返す。
func (s *Service) Signup(ctx context.Context, name, email, password string) (*Result, error) {
	if name == "" || email == "" || password == "" {
		s.metrics.RecordAuth("signup", metrics.AuthOutcomeFailed)
		return nil, model.NewMissingFieldsError()
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if existing != nil {
		s.metrics.RecordAuth("signup", metrics.AuthOutcomeFailed)
		return nil, model.NewEmailAlreadyRegisteredError()
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// 同時登録はユニーク制約で検出する
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.metrics.RecordAuth("signup", metrics.AuthOutcomeFailed)
			return nil, model.NewEmailAlreadyRegisteredError()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return nil, err
	}

	s.metrics.RecordAuth("signup", metrics.AuthOutcomeOK)
	slog.Info("user signed up", slog.String("user_id", user.ID))
	return &Result{User: user, Token: token}, nil
}

// Login はメールアドレスとパスワードを検証し、トークンを発行する。
// ユーザーが存在しない場合とパスワード不一致の場合は同一のInvalidCredentialsエラーを返す。
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	if email == "" || password == "" {
		s.metrics.RecordAuth("login", metrics.AuthOutcomeFailed)
		return nil, model.NewMissingFieldsError()
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil {
		CheckPassword(s.dummyHash, password)
		s.metrics.RecordAuth("login", metrics.AuthOutcomeFailed)
		return nil, model.NewInvalidCredentialsError()
	}
	if !CheckPassword(user.PasswordHash, password) {
		s.metrics.RecordAuth("login", metrics.AuthOutcomeFailed)
		return nil, model.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return nil, err
	}

	s.metrics.RecordAuth("login", metrics.AuthOutcomeOK)
	return &Result{User: user, Token: token}, nil
}
