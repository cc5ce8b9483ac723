// internal/app/features/payment/routes.go
package payment

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the public webhook router. The gateway calls it without a
// bearer token, so it must not sit behind the auth middleware.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleNotification)
	return r
}
