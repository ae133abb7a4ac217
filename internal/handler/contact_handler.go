package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/medicare/internal/contact"
	"github.com/hitoshi/medicare/internal/model"
)

// ContactServiceInterface はお問い合わせハンドラーが必要とするサービスインターフェース。
type ContactServiceInterface interface {
	Submit(ctx context.Context, input contact.Input) (*model.Contact, error)
}

// ContactHandler はお問い合わせのHTTPハンドラー。
type ContactHandler struct {
	service ContactServiceInterface
}

// NewContactHandler はContactHandlerを生成する。
func NewContactHandler(service ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type createContactResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Contact contactResponse `json:"contact"`
}

// SubmitContact はお問い合わせを受け付ける。
// POST /api/contact
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, err)
		return
	}

	c, err := h.service.Submit(r.Context(), contact.Input{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createContactResponse{
		Success: true,
		Message: "Contact saved",
		Contact: toContactResponse(c),
	})
}
