// Package model はドメインモデルを定義する。
package model

import "time"

// Doctor は医師ディレクトリの1レコードを表す。
type Doctor struct {
	ID             string
	Name           string
	Specialization string
	Experience     int      // 経験年数。未指定時は0
	AvailableTimes []string // 予約可能な時間枠（"09:00"形式）。未指定時は空
	Image          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
