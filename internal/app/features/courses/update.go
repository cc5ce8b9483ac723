// internal/app/features/courses/update.go
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
	coursestore "github.com/bintangnugrahaa/course-lms/internal/app/store/courses"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/htmlsanitize"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/inputval"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/txn"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
)

// HandleUpdateCourse handles PUT /courses/{id} (multipart). All mutable
// fields are replaced; the stored thumbnail survives when no new file was
// uploaded, and the category back-references move when the category changed.
func (h *Handler) HandleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Course or category not found")
		return
	}

	in, thumb, err := parseCourseForm(r)
	if err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.ValidationFailed(w, res.Messages())
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(in.CategoryID)
	if err != nil {
		respond.NotFound(w, "Course or category not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	categories := categorystore.New(h.DB)
	courses := coursestore.New(h.DB)

	oldCourse, err := courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Course or category not found")
			return
		}
		h.Log.Error("courses: loading for update", zap.Error(err))
		respond.ServerError(w)
		return
	}
	if _, err := categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Course or category not found")
			return
		}
		h.Log.Error("courses: loading category", zap.Error(err))
		respond.ServerError(w)
		return
	}

	thumbnail := ""
	if thumb != nil {
		thumbnail, err = h.Uploads.Save(ctx, uploads.DirCourses, thumb)
		if err != nil {
			if errors.Is(err, uploads.ErrNotImage) {
				respond.BadRequest(w, "Thumbnail must be an image")
				return
			}
			h.Log.Error("courses: saving thumbnail", zap.Error(err))
			respond.ServerError(w)
			return
		}
	}

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if err := courses.UpdateInfo(ctx, id, in.Name, in.Tagline,
			htmlsanitize.Sanitize(in.Description), categoryID, thumbnail); err != nil {
			return err
		}
		if categoryID != oldCourse.CategoryID {
			if err := categories.PullCourse(ctx, oldCourse.CategoryID, id); err != nil {
				return err
			}
			return categories.PushCourse(ctx, categoryID, id)
		}
		return nil
	})
	if err != nil {
		if thumbnail != "" {
			if derr := h.Uploads.Delete(ctx, uploads.DirCourses, thumbnail); derr != nil {
				h.Log.Warn("courses: removing orphaned thumbnail", zap.Error(derr))
			}
		}
		h.Log.Error("courses: updating", zap.Error(err))
		respond.ServerError(w)
		return
	}

	// The old file is unreferenced once the update commits.
	if thumbnail != "" && oldCourse.HasThumbnail() {
		if err := h.Uploads.Delete(ctx, uploads.DirCourses, oldCourse.Thumbnail); err != nil {
			h.Log.Warn("courses: removing replaced thumbnail", zap.Error(err))
		}
	}

	respond.OK(w, "Update Course Success", nil)
}
