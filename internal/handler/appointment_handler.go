package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/medicare/internal/model"
)

// AppointmentServiceInterface は予約ハンドラーが必要とするサービスインターフェース。
type AppointmentServiceInterface interface {
	Create(ctx context.Context, input model.AppointmentInput) (*model.Appointment, error)
	List(ctx context.Context) ([]model.AppointmentWithDoctor, error)
}

// AppointmentHandler は予約のHTTPハンドラー。
type AppointmentHandler struct {
	service AppointmentServiceInterface
}

// NewAppointmentHandler はAppointmentHandlerを生成する。
func NewAppointmentHandler(service AppointmentServiceInterface) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type createAppointmentRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Doctor     string `json:"doctor"`
	Department string `json:"department"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Message    string `json:"message"`
}

type createAppointmentResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Appointment appointmentResponse `json:"appointment"`
}

type appointmentListResponse struct {
	Success      bool                            `json:"success"`
	Message      string                          `json:"message"`
	Appointments []appointmentWithDoctorResponse `json:"appointments"`
}

// CreateAppointment は予約を作成する。doctorには医師IDまたは医師名を指定できる。
// POST /api/appointments
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, err)
		return
	}

	appointment, err := h.service.Create(r.Context(), model.AppointmentInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Doctor:     req.Doctor,
		Department: req.Department,
		Date:       req.Date,
		Time:       req.Time,
		Message:    req.Message,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createAppointmentResponse{
		Success:     true,
		Message:     "Appointment saved",
		Appointment: toAppointmentResponse(appointment),
	})
}

// ListAppointments は全予約を医師情報付きで新しい順に返す。認証必須。
// GET /api/appointments
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]appointmentWithDoctorResponse, len(list))
	for i := range list {
		results[i] = toAppointmentWithDoctorResponse(&list[i])
	}
	writeJSON(w, http.StatusOK, appointmentListResponse{
		Success:      true,
		Message:      "Appointments fetched",
		Appointments: results,
	})
}
