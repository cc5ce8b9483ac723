// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/sign-up", h.HandleSignUp)
	r.Post("/sign-in", h.HandleSignIn)

	return r
}
