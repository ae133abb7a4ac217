package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/medicare/internal/model"
)

// DoctorServiceInterface は医師ハンドラーが必要とするサービスインターフェース。
type DoctorServiceInterface interface {
	List(ctx context.Context) ([]*model.Doctor, error)
}

// DoctorHandler は医師ディレクトリのHTTPハンドラー。
type DoctorHandler struct {
	service DoctorServiceInterface
}

// NewDoctorHandler はDoctorHandlerを生成する。
func NewDoctorHandler(service DoctorServiceInterface) *DoctorHandler {
	return &DoctorHandler{service: service}
}

type doctorListResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Doctors []doctorResponse `json:"doctors"`
}

// ListDoctors は全医師を返す。
// GET /api/doctors
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]doctorResponse, len(doctors))
	for i, d := range doctors {
		results[i] = toDoctorResponse(d)
	}
	writeJSON(w, http.StatusOK, doctorListResponse{
		Success: true,
		Message: "Doctors fetched",
		Doctors: results,
	})
}
