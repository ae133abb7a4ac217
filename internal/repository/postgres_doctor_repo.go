package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/medicare/internal/model"
	"github.com/lib/pq"
)

const doctorColumns = `id, name, specialization, experience, available_times, image, created_at, updated_at`

// PostgresDoctorRepo はPostgreSQLを使用した医師リポジトリ。
type PostgresDoctorRepo struct {
	db *sql.DB
}

// NewPostgresDoctorRepo はPostgresDoctorRepoを生成する。
func NewPostgresDoctorRepo(db *sql.DB) *PostgresDoctorRepo {
	return &PostgresDoctorRepo{db: db}
}

// rowScanner は*sql.Rowと*sql.Rowsの共通インターフェース。
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDoctor(s rowScanner, d *model.Doctor) error {
	var times pq.StringArray
	if err := s.Scan(
		&d.ID, &d.Name, &d.Specialization, &d.Experience,
		&times, &d.Image, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return err
	}
	d.AvailableTimes = []string(times)
	if d.AvailableTimes == nil {
		d.AvailableTimes = []string{}
	}
	return nil
}

// FindByID は指定IDの医師を取得する。見つからない場合はnilを返す。
func (r *PostgresDoctorRepo) FindByID(ctx context.Context, id string) (*model.Doctor, error) {
	doctor := &model.Doctor{}
	err := scanDoctor(r.db.QueryRowContext(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE id = $1`,
		id,
	), doctor)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find doctor by ID: %w", err)
	}
	return doctor, nil
}

// FindByNamePattern は名前が正規表現に一致する医師を1件取得する。見つからない場合はnilを返す。
// patternはPostgreSQLの~*演算子（大文字小文字を区別しない正規表現）で評価される。
func (r *PostgresDoctorRepo) FindByNamePattern(ctx context.Context, pattern string) (*model.Doctor, error) {
	doctor := &model.Doctor{}
	err := scanDoctor(r.db.QueryRowContext(ctx,
		`SELECT `+doctorColumns+` FROM doctors
		 WHERE name ~* $1
		 ORDER BY created_at, id
		 LIMIT 1`,
		pattern,
	), doctor)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find doctor by name: %w", err)
	}
	return doctor, nil
}

// List は全医師を登録順で返す。
func (r *PostgresDoctorRepo) List(ctx context.Context) ([]*model.Doctor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+doctorColumns+` FROM doctors ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer rows.Close()

	doctors := []*model.Doctor{}
	for rows.Next() {
		d := &model.Doctor{}
		if err := scanDoctor(rows, d); err != nil {
			return nil, fmt.Errorf("failed to scan doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate doctors: %w", err)
	}
	return doctors, nil
}

// Count は医師の件数を返す。
func (r *PostgresDoctorRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM doctors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return n, nil
}

// CreateMany は複数の医師を同一トランザクションで作成する。
func (r *PostgresDoctorRepo) CreateMany(ctx context.Context, doctors []*model.Doctor) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO doctors (id, name, specialization, experience, available_times, image, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare doctor insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range doctors {
		times := d.AvailableTimes
		if times == nil {
			times = []string{}
		}
		if _, err := stmt.ExecContext(ctx,
			d.ID, d.Name, d.Specialization, d.Experience,
			pq.Array(times), d.Image, d.CreatedAt, d.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert doctor %q: %w", d.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// compile-time interface check
var _ DoctorRepository = (*PostgresDoctorRepo)(nil)
