// internal/app/features/courses/categories.go
package courses

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	categorystore "github.com/bintangnugrahaa/course-lms/internal/app/store/categories"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
)

// ServeCategories handles GET /categories. Unfiltered; populates the
// category select when creating or editing a course.
func (h *Handler) ServeCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cats, err := categorystore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("courses: listing categories", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "Get categories success", cats)
}
