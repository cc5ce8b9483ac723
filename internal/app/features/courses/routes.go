// internal/app/features/courses/routes.go
package courses

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the catalog, lesson content, and roster routes. The token
// middleware is applied by the caller; chi matches the static /contents and
// /students segments before the {id} patterns.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// CATALOG
	r.Get("/", h.ServeCourseList)
	r.Post("/", h.HandleCreateCourse)
	r.Get("/{id}", h.ServeCourseDetail)
	r.Put("/{id}", h.HandleUpdateCourse)
	r.Delete("/{id}", h.HandleDeleteCourse)

	// LESSON CONTENT
	r.Post("/contents", h.HandleCreateContent)
	r.Get("/contents/{id}", h.ServeContentDetail)
	r.Put("/contents/{id}", h.HandleUpdateContent)
	r.Delete("/contents/{id}", h.HandleDeleteContent)

	// ROSTER
	r.Get("/students/{id}", h.ServeCourseStudents)
	r.Post("/students/{id}", h.HandleAddStudent)
	r.Put("/students/{id}", h.HandleRemoveStudent)

	return r
}
