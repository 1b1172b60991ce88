package wire

import (
	"net/http"

	"meeting-scheduler/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	auth func(http.Handler) http.Handler,
	public func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	// Rate limited, tanpa auth
	r.With(public).Post("/api/users/register", authHandler.Register)
	r.With(public).Post("/api/users/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Post("/api/users/logout", authHandler.Logout)
	r.With(auth).Post("/api/users/logout-all", authHandler.LogoutAll)
}
