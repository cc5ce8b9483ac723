// internal/app/features/courses/delete.go
package courses

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	categorystore "github.com/bintangnugrahaa/course-lms/internal/app/store/categories"
	contentstore "github.com/bintangnugrahaa/course-lms/internal/app/store/contents"
	coursestore "github.com/bintangnugrahaa/course-lms/internal/app/store/courses"
	userstore "github.com/bintangnugrahaa/course-lms/internal/app/store/users"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/txn"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
)

// HandleDeleteCourse handles DELETE /courses/{id}. Deletion cascades: the
// course's lesson contents go with it, every back-reference (category,
// manager, enrolled students) is pulled, and the thumbnail file is removed
// after the writes commit.
func (h *Handler) HandleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Course not found")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "course delete")
	defer cancel()

	courses := coursestore.New(h.DB)
	course, err := courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Course not found")
			return
		}
		h.Log.Error("courses: loading for delete", zap.Error(err))
		respond.ServerError(w)
		return
	}

	categories := categorystore.New(h.DB)
	contents := contentstore.New(h.DB)
	users := userstore.New(h.DB)

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if _, err := contents.DeleteByCourse(ctx, course.ID); err != nil {
			return err
		}
		if err := categories.PullCourse(ctx, course.CategoryID, course.ID); err != nil {
			return err
		}
		if err := users.PullCourse(ctx, course.ManagerID, course.ID); err != nil {
			return err
		}
		if err := users.PullCourseFromUsers(ctx, course.Students, course.ID); err != nil {
			return err
		}
		_, err := courses.Delete(ctx, course.ID)
		return err
	})
	if err != nil {
		h.Log.Error("courses: deleting", zap.Error(err))
		respond.ServerError(w)
		return
	}

	// Best-effort: the document graph is already consistent.
	if course.HasThumbnail() {
		if err := h.Uploads.Delete(ctx, uploads.DirCourses, course.Thumbnail); err != nil {
			h.Log.Warn("courses: removing thumbnail file", zap.Error(err))
		}
	}

	respond.OK(w, "Delete course success", nil)
}
