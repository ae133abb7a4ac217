package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// healthCheckTimeout はヘルスチェック時のDB疎通確認の上限時間。
const healthCheckTimeout = 2 * time.Second

// HealthChecker は依存サービスの疎通を確認するインターフェース。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

type healthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewHealthHandler はDBへの疎通を確認するヘルスチェックハンドラーを返す。
// GET /health
func NewHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			defer cancel()
			if err := checker.PingContext(ctx); err != nil {
				slog.Warn("health check failed", slog.String("error", err.Error()))
				writeJSON(w, http.StatusServiceUnavailable, healthResponse{Success: false, Message: "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, healthResponse{Success: true, Message: "ok"})
	}
}
