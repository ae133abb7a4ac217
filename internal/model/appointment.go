// Package model はドメインモデルを定義する。
package model

import "time"

// DateLayout は予約日の入出力フォーマット。
const DateLayout = "2006-01-02"

// Appointment は診察予約を表す。
// DoctorIDは常に解決済みの医師IDを保持し、リクエストの生の文字列は保存しない。
type Appointment struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	DoctorID   string
	Department string
	Date       time.Time
	Time       string
	Message    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AppointmentWithDoctor は予約と医師情報を結合した構造体。
type AppointmentWithDoctor struct {
	Appointment
	Doctor Doctor
}

// AppointmentInput は予約作成リクエストの入力値。
// Department と Message は任意項目。
type AppointmentInput struct {
	Name       string
	Email      string
	Phone      string
	Doctor     string
	Department string
	Date       string
	Time       string
	Message    string
}
