// internal/app/features/courses/detail.go
package courses

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	categorystore "github.com/bintangnugrahaa/course-lms/internal/app/store/categories"
	contentstore "github.com/bintangnugrahaa/course-lms/internal/app/store/contents"
	coursestore "github.com/bintangnugrahaa/course-lms/internal/app/store/courses"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
)

type courseDetail struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Tagline      string          `json:"tagline"`
	Description  string          `json:"description"`
	Thumbnail    string          `json:"thumbnail,omitempty"`
	ThumbnailURL string          `json:"thumbnail_url"`
	Category     categoryName    `json:"category"`
	Details      []contentDetail `json:"details"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type contentDetail struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	YoutubeID string `json:"youtubeId,omitempty"`
	Text      string `json:"text,omitempty"`
}

// ServeCourseDetail handles GET /courses/{id}. The preview query flag
// controls whether lesson payloads (youtubeId/text) are included; without it
// clients only see the locked title/type list.
func (h *Handler) ServeCourseDetail(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Course not found")
		return
	}
	preview := r.URL.Query().Get("preview") == "true"

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	course, err := coursestore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Course not found")
			return
		}
		h.Log.Error("courses: loading detail", zap.Error(err))
		respond.ServerError(w)
		return
	}

	detail := courseDetail{
		ID:           course.ID.Hex(),
		Name:         course.Name,
		Tagline:      course.Tagline,
		Description:  course.Description,
		Thumbnail:    course.Thumbnail,
		ThumbnailURL: h.Uploads.PublicURL(uploads.DirCourses, course.Thumbnail),
		Details:      []contentDetail{},
		CreatedAt:    course.CreatedAt,
		UpdatedAt:    course.UpdatedAt,
	}

	if cat, err := categorystore.New(h.DB).GetByID(ctx, course.CategoryID); err == nil {
		detail.Category = categoryName{Name: cat.Name}
	}

	contents, err := contentstore.New(h.DB).ListByIDs(ctx, course.Contents)
	if err != nil {
		h.Log.Error("courses: loading contents", zap.Error(err))
		respond.ServerError(w)
		return
	}
	for _, content := range contents {
		item := contentDetail{
			ID:    content.ID.Hex(),
			Title: content.Title,
			Type:  content.Type,
		}
		if preview {
			item.YoutubeID = content.YoutubeID
			item.Text = content.Text
		}
		detail.Details = append(detail.Details, item)
	}

	respond.OK(w, "Get Course Detail success", detail)
}
