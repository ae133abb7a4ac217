// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// サインアップ時に作成され、以後は更新されない。
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity はトークンに埋め込まれる認証済みユーザーの識別情報。
type Identity struct {
	ID    string
	Email string
}

// Identity はユーザーのトークン用識別情報を返す。
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}
