// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/medicare/internal/middleware"
	"github.com/hitoshi/medicare/internal/model"
)

// maxRequestBodyBytes はJSONリクエストボディの上限サイズ。
const maxRequestBodyBytes = 1 << 20

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// decodeJSON はリクエストボディをdstにデコードする。
// 空のボディは全フィールド未指定として扱い、後続の必須項目チェックに任せる。
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return model.NewInvalidRequestError()
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeMissingFields, model.ErrCodeInvalidRequest, model.ErrCodeInvalidDate:
		return http.StatusBadRequest
	case model.ErrCodeDoctorNotFound:
		return http.StatusBadRequest
	case model.ErrCodeEmailAlreadyRegistered:
		return http.StatusConflict
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// --- レスポンス型 ---

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type doctorResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Experience     int       `json:"experience"`
	AvailableTimes []string  `json:"availableTimes"`
	Image          string    `json:"image"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// appointmentFields は予約レスポンスの共通フィールド。
type appointmentFields struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// appointmentResponse は作成直後の予約。doctorは医師IDを返す。
type appointmentResponse struct {
	appointmentFields
	Doctor string `json:"doctor"`
}

// appointmentWithDoctorResponse は一覧用の予約。doctorは医師情報を展開して返す。
type appointmentWithDoctorResponse struct {
	appointmentFields
	Doctor doctorResponse `json:"doctor"`
}

type contactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toDoctorResponse(d *model.Doctor) doctorResponse {
	times := d.AvailableTimes
	if times == nil {
		times = []string{}
	}
	return doctorResponse{
		ID:             d.ID,
		Name:           d.Name,
		Specialization: d.Specialization,
		Experience:     d.Experience,
		AvailableTimes: times,
		Image:          d.Image,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func toAppointmentFields(a *model.Appointment) appointmentFields {
	return appointmentFields{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Phone:      a.Phone,
		Department: a.Department,
		Date:       a.Date.Format(model.DateLayout),
		Time:       a.Time,
		Message:    a.Message,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toAppointmentResponse(a *model.Appointment) appointmentResponse {
	return appointmentResponse{appointmentFields: toAppointmentFields(a), Doctor: a.DoctorID}
}

func toAppointmentWithDoctorResponse(a *model.AppointmentWithDoctor) appointmentWithDoctorResponse {
	return appointmentWithDoctorResponse{
		appointmentFields: toAppointmentFields(&a.Appointment),
		Doctor:            toDoctorResponse(&a.Doctor),
	}
}

func toContactResponse(c *model.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}
