// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/medicare/internal/metrics"
	"github.com/hitoshi/medicare/internal/model"
)

const bearerScheme = "Bearer"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// identityContextKey はリクエストコンテキストに認証済みIDを格納するためのキー。
var identityContextKey = contextKey("identity")

// TokenVerifier はベアラートークンの検証に必要なインターフェース。
// auth.TokenServiceの部分集合として定義する。
type TokenVerifier interface {
	Verify(tokenString string) (model.Identity, error)
}

// NewAuthMiddleware はAuthorizationヘッダーのベアラートークンを検証するミドルウェアを返す。
// 検証に成功した場合はIDをリクエストコンテキストに注入する。
// ヘッダーなし、トークンなし、検証失敗（期限切れを含む）はすべて401 Unauthorizedを返し、
// 後続のハンドラーは実行しない。
func NewAuthMiddleware(verifier TokenVerifier, collector metrics.MetricsCollector) func(next http.Handler) http.Handler {
	if collector == nil {
		collector = metrics.Nop{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				collector.RecordAuth("verify", metrics.AuthOutcomeFailed)
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				slog.Debug("token verification failed", slog.String("error", err.Error()))
				collector.RecordAuth("verify", metrics.AuthOutcomeFailed)
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			collector.RecordAuth("verify", metrics.AuthOutcomeOK)
			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
		})
	}
}

// bearerToken は"Bearer <token>"形式のヘッダー値からトークン部分を取り出す。
// スキーム名の大文字小文字は区別しない。
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

// IdentityFromContext はリクエストコンテキストから認証済みIDを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(model.Identity)
	if !ok || identity.ID == "" {
		return model.Identity{}, false
	}
	return identity, true
}

// ContextWithIdentity はコンテキストに認証済みIDを注入する。
// アクセスログ用のリクエスト情報がある場合はユーザーIDも記録する。
func ContextWithIdentity(ctx context.Context, identity model.Identity) context.Context {
	if info := requestInfoFromContext(ctx); info != nil {
		info.userID = identity.ID
	}
	return context.WithValue(ctx, identityContextKey, identity)
}
