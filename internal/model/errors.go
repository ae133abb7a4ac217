// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, appointment, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeMissingFields          = "MISSING_FIELDS"
	ErrCodeInvalidRequest         = "INVALID_REQUEST"
	ErrCodeInvalidDate            = "INVALID_DATE"
	ErrCodeEmailAlreadyRegistered = "EMAIL_ALREADY_REGISTERED"
	ErrCodeInvalidCredentials     = "INVALID_CREDENTIALS"
	ErrCodeDoctorNotFound         = "DOCTOR_NOT_FOUND"
	ErrCodeUnauthorized           = "UNAUTHORIZED"
	ErrCodeInternal               = "INTERNAL_ERROR"
)

// NewMissingFieldsError は必須項目不足エラーを生成する。
func NewMissingFieldsError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingFields,
		Message:  "Missing fields",
		Category: "validation",
		Action:   "Fill in all required fields and try again.",
	}
}

// NewInvalidRequestError はリクエストボディの解析失敗エラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "Invalid request body",
		Category: "validation",
		Action:   "Send the request body as a JSON object.",
	}
}

// NewInvalidDateError は予約日のフォーマット不正エラーを生成する。
func NewInvalidDateError(date string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidDate,
		Message:  fmt.Sprintf("Invalid date: %s", date),
		Category: "validation",
		Action:   "Specify the date as YYYY-MM-DD.",
	}
}

// NewEmailAlreadyRegisteredError はメールアドレス重複エラーを生成する。
func NewEmailAlreadyRegisteredError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailAlreadyRegistered,
		Message:  "Email already registered",
		Category: "auth",
		Action:   "Log in with this email or sign up with a different one.",
	}
}

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
// メールアドレス未登録とパスワード不一致のどちらでも同一の内容を返す。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Invalid credentials",
		Category: "auth",
		Action:   "Check your email and password.",
	}
}

// NewDoctorNotFoundError は医師未検出エラーを生成する。
func NewDoctorNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeDoctorNotFound,
		Message:  "Doctor not found",
		Category: "appointment",
		Action:   "Select a doctor from the directory.",
	}
}

// NewUnauthorizedError は認証エラーを生成する。
// トークンの欠落・不正・期限切れはすべてこのエラーに集約する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "Unauthorized",
		Category: "auth",
		Action:   "Log in and send the token as 'Authorization: Bearer <token>'.",
	}
}

// NewInternalError は内部エラーを生成する。
// 詳細はログのみに記録し、呼び出し側には一般的なメッセージを返す。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "Server error",
		Category: "system",
		Action:   "Please try again later.",
	}
}
