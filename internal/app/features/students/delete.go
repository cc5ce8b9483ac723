// internal/app/features/students/delete.go
package students

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	coursestore "github.com/bintangnugrahaa/course-lms/internal/app/store/courses"
	userstore "github.com/bintangnugrahaa/course-lms/internal/app/store/users"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/txn"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
)

// HandleDeleteStudent handles DELETE /students/{id}. The student is pulled
// from every course roster and the user document removed in one
// transaction; the photo file goes after the commit.
func (h *Handler) HandleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Student not found")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "student delete")
	defer cancel()

	users := userstore.New(h.DB)
	student, err := users.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Student not found")
			return
		}
		h.Log.Error("students: loading for delete", zap.Error(err))
		respond.ServerError(w)
		return
	}

	courses := coursestore.New(h.DB)
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if err := courses.PullStudentFromAll(ctx, student.ID); err != nil {
			return err
		}
		_, err := users.Delete(ctx, student.ID)
		return err
	})
	if err != nil {
		h.Log.Error("students: deleting", zap.Error(err))
		respond.ServerError(w)
		return
	}

	// Delete skips the shared placeholder image.
	if err := h.Uploads.Delete(ctx, uploads.DirStudents, student.Photo); err != nil {
		h.Log.Warn("students: removing photo", zap.Error(err))
	}

	respond.OK(w, "Delete student success", nil)
}
