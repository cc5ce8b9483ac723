// internal/app/features/students/detail.go
package students

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/bintangnugrahaa/course-lms/internal/app/store/users"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
)

type studentDetail struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Photo     string    `json:"photo,omitempty"`
	PhotoURL  string    `json:"photo_url"`
	Courses   []string  `json:"courses"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServeStudentDetail handles GET /students/{id}. The id is validated as a
// well-formed reference before touching the store.
func (h *Handler) ServeStudentDetail(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Student not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	student, err := userstore.New(h.DB).GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Student not found")
			return
		}
		h.Log.Error("students: loading detail", zap.Error(err))
		respond.ServerError(w)
		return
	}

	courseIDs := make([]string, 0, len(student.Courses))
	for _, cid := range student.Courses {
		courseIDs = append(courseIDs, cid.Hex())
	}

	respond.OK(w, "Get Student Detail success", studentDetail{
		ID:        student.ID.Hex(),
		Name:      student.Name,
		Email:     student.Email,
		Photo:     student.Photo,
		PhotoURL:  h.Uploads.PublicURL(uploads.DirStudents, student.Photo),
		Courses:   courseIDs,
		CreatedAt: student.CreatedAt,
		UpdatedAt: student.UpdatedAt,
	})
}
