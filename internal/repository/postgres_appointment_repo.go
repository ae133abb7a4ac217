package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/medicare/internal/model"
	"github.com/lib/pq"
)

// PostgresAppointmentRepo はPostgreSQLを使用した予約リポジトリ。
type PostgresAppointmentRepo struct {
	db *sql.DB
}

// NewPostgresAppointmentRepo はPostgresAppointmentRepoを生成する。
func NewPostgresAppointmentRepo(db *sql.DB) *PostgresAppointmentRepo {
	return &PostgresAppointmentRepo{db: db}
}

// Create は予約を作成する。
func (r *PostgresAppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO appointments
		   (id, name, email, phone, doctor_id, department, date, time, message, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.Name, a.Email, a.Phone, a.DoctorID, a.Department,
		a.Date.Format(model.DateLayout), a.Time, a.Message, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

// ListWithDoctor は全予約を医師情報とJOINして作成日時の降順で返す。
func (r *PostgresAppointmentRepo) ListWithDoctor(ctx context.Context) ([]model.AppointmentWithDoctor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.name, a.email, a.phone, a.doctor_id, a.department,
		        a.date, a.time, a.message, a.created_at, a.updated_at,
		        d.id, d.name, d.specialization, d.experience, d.available_times,
		        d.image, d.created_at, d.updated_at
		 FROM appointments a
		 JOIN doctors d ON d.id = a.doctor_id
		 ORDER BY a.created_at DESC, a.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	results := []model.AppointmentWithDoctor{}
	for rows.Next() {
		var (
			a     model.AppointmentWithDoctor
			times pq.StringArray
		)
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Email, &a.Phone, &a.DoctorID, &a.Department,
			&a.Date, &a.Time, &a.Message, &a.CreatedAt, &a.UpdatedAt,
			&a.Doctor.ID, &a.Doctor.Name, &a.Doctor.Specialization, &a.Doctor.Experience, &times,
			&a.Doctor.Image, &a.Doctor.CreatedAt, &a.Doctor.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		a.Doctor.AvailableTimes = []string(times)
		if a.Doctor.AvailableTimes == nil {
			a.Doctor.AvailableTimes = []string{}
		}
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}
	return results, nil
}

// compile-time interface check
var _ AppointmentRepository = (*PostgresAppointmentRepo)(nil)
