// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/medicare/internal/model"
)

// ErrDuplicateEmail は同じメールアドレスのユーザーが既に存在する場合に返される。
// usersテーブルのユニーク制約違反から変換される。
var ErrDuplicateEmail = errors.New("email already exists")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByEmail はメールアドレスの完全一致（大文字小文字を区別）でユーザーを取得する。
	// 見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	// メールアドレスが重複する場合はErrDuplicateEmailを返す。
	Create(ctx context.Context, user *model.User) error
}

// DoctorRepository は医師ディレクトリの永続化インターフェース。
type DoctorRepository interface {
	// FindByID は指定IDの医師を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Doctor, error)

	// FindByNamePattern は名前が正規表現patternに大文字小文字を区別せず一致する医師を1件取得する。
	// 複数一致する場合は最も古いレコードを返す。見つからない場合はnilを返す。
	FindByNamePattern(ctx context.Context, pattern string) (*model.Doctor, error)

	// List は全医師を登録順で返す。
	List(ctx context.Context) ([]*model.Doctor, error)

	// Count は医師の件数を返す。
	Count(ctx context.Context) (int, error)

	// CreateMany は複数の医師を同一トランザクションで作成する。
	CreateMany(ctx context.Context, doctors []*model.Doctor) error
}

// AppointmentRepository は予約データの永続化インターフェース。
type AppointmentRepository interface {
	// Create は予約を作成する。
	Create(ctx context.Context, appointment *model.Appointment) error

	// ListWithDoctor は全予約を医師情報とJOINして作成日時の降順で返す。
	ListWithDoctor(ctx context.Context) ([]model.AppointmentWithDoctor, error)
}

// ContactRepository はお問い合わせの永続化インターフェース。
type ContactRepository interface {
	// Create はお問い合わせを作成する。
	Create(ctx context.Context, contact *model.Contact) error
}
