// Package model はドメインモデルを定義する。
package model

import "time"

// Contact はお問い合わせフォームの送信内容を表す。
type Contact struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Message   string
	CreatedAt time.Time
}
