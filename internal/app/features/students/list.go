// internal/app/features/students/list.go
package students

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	userstore "github.com/bintangnugrahaa/course-lms/internal/app/store/users"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/auth"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
)

type studentSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Photo        string    `json:"photo,omitempty"`
	PhotoURL     string    `json:"photo_url"`
	TotalCourses int       `json:"total_courses"`
	CreatedAt    time.Time `json:"created_at"`
}

// ServeStudentList handles GET /students. Only students owned by the caller
// are returned.
func (h *Handler) ServeStudentList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		respond.Unauthorized(w, "Unauthorized")
		return
	}
	managerID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		respond.Unauthorized(w, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := userstore.New(h.DB).ListStudents(ctx, &managerID)
	if err != nil {
		h.Log.Error("students: listing", zap.Error(err))
		respond.ServerError(w)
		return
	}

	out := make([]studentSummary, 0, len(list))
	for _, s := range list {
		out = append(out, studentSummary{
			ID:           s.ID.Hex(),
			Name:         s.Name,
			Email:        s.Email,
			Photo:        s.Photo,
			PhotoURL:     h.Uploads.PublicURL(uploads.DirStudents, s.Photo),
			TotalCourses: len(s.Courses),
			CreatedAt:    s.CreatedAt,
		})
	}

	respond.OK(w, "Get Students success", out)
}
