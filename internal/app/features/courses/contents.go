// internal/app/features/courses/contents.go
package courses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	contentstore "github.com/bintangnugrahaa/course-lms/internal/app/store/contents"
	coursestore "github.com/bintangnugrahaa/course-lms/internal/app/store/courses"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/htmlsanitize"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/inputval"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/txn"
	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
)

// The discriminator decides which payload field must be present: a video
// needs youtubeId, a text lesson needs a body.
type mutateContentInput struct {
	Title     string `json:"title" validate:"required,min=5"`
	Type      string `json:"type" validate:"required,oneof=video text"`
	YoutubeID string `json:"youtubeId" validate:"required_if=Type video"`
	Text      string `json:"text" validate:"required_if=Type text,omitempty,min=10"`
	CourseID  string `json:"courseId" validate:"required"`
}

// HandleCreateContent handles POST /courses/contents. The new lesson is
// appended to the parent course's ordered content list in the same
// transaction.
func (h *Handler) HandleCreateContent(w http.ResponseWriter, r *http.Request) {
	var in mutateContentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.ValidationFailed(w, res.Messages())
		return
	}

	courseID, err := primitive.ObjectIDFromHex(in.CourseID)
	if err != nil {
		respond.NotFound(w, "Course not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	courses := coursestore.New(h.DB)
	if _, err := courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Course not found")
			return
		}
		h.Log.Error("contents: loading course", zap.Error(err))
		respond.ServerError(w)
		return
	}

	contents := contentstore.New(h.DB)
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		content, err := contents.Create(ctx, models.CourseContent{
			Title:     in.Title,
			Type:      in.Type,
			CourseID:  courseID,
			YoutubeID: in.YoutubeID,
			Text:      htmlsanitize.Sanitize(in.Text),
		})
		if err != nil {
			return err
		}
		return courses.PushContent(ctx, courseID, content.ID)
	})
	if err != nil {
		h.Log.Error("contents: creating", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "Create Content Success", nil)
}

// HandleUpdateContent handles PUT /courses/contents/{id}.
func (h *Handler) HandleUpdateContent(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Content not found")
		return
	}

	var in mutateContentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.ValidationFailed(w, res.Messages())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	contents := contentstore.New(h.DB)
	if _, err := contents.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Content not found")
			return
		}
		h.Log.Error("contents: loading for update", zap.Error(err))
		respond.ServerError(w)
		return
	}

	if err := contents.Update(ctx, id, in.Title, in.Type, in.YoutubeID, htmlsanitize.Sanitize(in.Text)); err != nil {
		h.Log.Error("contents: updating", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "Update Content Success", nil)
}

// HandleDeleteContent handles DELETE /courses/contents/{id}. The lesson is
// pulled from its parent course's list in the same transaction.
func (h *Handler) HandleDeleteContent(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Content not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	contents := contentstore.New(h.DB)
	content, err := contents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Content not found")
			return
		}
		h.Log.Error("contents: loading for delete", zap.Error(err))
		respond.ServerError(w)
		return
	}

	courses := coursestore.New(h.DB)
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if err := courses.PullContent(ctx, content.CourseID, content.ID); err != nil {
			return err
		}
		_, err := contents.Delete(ctx, content.ID)
		return err
	})
	if err != nil {
		h.Log.Error("contents: deleting", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "Delete Content Success", nil)
}

// ServeContentDetail handles GET /courses/contents/{id}.
func (h *Handler) ServeContentDetail(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Content not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	content, err := contentstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Content not found")
			return
		}
		h.Log.Error("contents: loading detail", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "Get Detail Content success", content)
}
