// internal/app/features/courses/create.go
package courses

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	categorystore "github.com/bintangnugrahaa/course-lms/internal/app/store/categories"
	coursestore "github.com/bintangnugrahaa/course-lms/internal/app/store/courses"
	userstore "github.com/bintangnugrahaa/course-lms/internal/app/store/users"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/auth"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/htmlsanitize"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/inputval"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/txn"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
)

const maxUploadMemory = 32 << 20

type mutateCourseInput struct {
	Name        string `json:"name" validate:"required,min=5"`
	CategoryID  string `json:"categoryId" validate:"required"`
	Tagline     string `json:"tagline" validate:"required,min=5"`
	Description string `json:"description" validate:"required,min=10"`
}

// parseCourseForm reads the multipart form fields and the optional
// thumbnail file header. The file is not saved here; uploads happen only
// after validation passes, so a rejected request never leaves a file behind.
func parseCourseForm(r *http.Request) (mutateCourseInput, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return mutateCourseInput{}, nil, err
	}

	in := mutateCourseInput{
		Name:        r.FormValue("name"),
		CategoryID:  r.FormValue("categoryId"),
		Tagline:     r.FormValue("tagline"),
		Description: r.FormValue("description"),
	}

	var fh *multipart.FileHeader
	if files := r.MultipartForm.File["thumbnail"]; len(files) > 0 {
		fh = files[0]
	}
	return in, fh, nil
}

// HandleCreateCourse handles POST /courses (multipart, field `thumbnail`).
func (h *Handler) HandleCreateCourse(w http.ResponseWriter, r *http.Request) {
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
		respond.NotFound(w, "Category not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	categories := categorystore.New(h.DB)
	if _, err := categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Category not found")
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

	courses := coursestore.New(h.DB)
	users := userstore.New(h.DB)

	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		course, err := courses.Create(ctx, models.Course{
			Name:        in.Name,
			Tagline:     in.Tagline,
			Description: htmlsanitize.Sanitize(in.Description),
			Thumbnail:   thumbnail,
			CategoryID:  categoryID,
			ManagerID:   managerID,
		})
		if err != nil {
			return err
		}
		if err := categories.PushCourse(ctx, categoryID, course.ID); err != nil {
			return err
		}
		return users.PushCourse(ctx, managerID, course.ID)
	})
	if err != nil {
		// The course never came into existence; don't keep its file.
		if thumbnail != "" {
			if derr := h.Uploads.Delete(ctx, uploads.DirCourses, thumbnail); derr != nil {
				h.Log.Warn("courses: removing orphaned thumbnail", zap.Error(derr))
			}
		}
		h.Log.Error("courses: creating", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "Create Course Success", nil)
}
