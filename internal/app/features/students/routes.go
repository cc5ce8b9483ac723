// internal/app/features/students/routes.go
package students

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for student management. All routes sit behind
// the token middleware, mounted under /students by the bootstrap.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeStudentList)
	r.Post("/", h.HandleCreateStudent)
	r.Get("/{id}", h.ServeStudentDetail)
	r.Put("/{id}", h.HandleUpdateStudent)
	r.Delete("/{id}", h.HandleDeleteStudent)

	return r
}
