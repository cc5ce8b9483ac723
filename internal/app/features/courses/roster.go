// internal/app/features/courses/roster.go
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

	coursestore "github.com/bintangnugrahaa/course-lms/internal/app/store/courses"
	userstore "github.com/bintangnugrahaa/course-lms/internal/app/store/users"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/inputval"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/txn"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
)

type rosterStudent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photo_url"`
}

type rosterInput struct {
	StudentID string `json:"studentId" validate:"required"`
}

// ServeCourseStudents handles GET /courses/students/{id}: the course roster
// with public photo URLs.
func (h *Handler) ServeCourseStudents(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Course not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	course, err := coursestore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Course not found")
			return
		}
		h.Log.Error("roster: loading course", zap.Error(err))
		respond.ServerError(w)
		return
	}

	students, err := userstore.New(h.DB).ListByIDs(ctx, course.Students)
	if err != nil {
		h.Log.Error("roster: loading students", zap.Error(err))
		respond.ServerError(w)
		return
	}

	out := make([]rosterStudent, 0, len(students))
	for _, s := range students {
		out = append(out, rosterStudent{
			ID:       s.ID.Hex(),
			Name:     s.Name,
			Email:    s.Email,
			PhotoURL: h.Uploads.PublicURL(uploads.DirStudents, s.Photo),
		})
	}

	respond.OK(w, "Get Course Students Success", out)
}

// resolveRosterPair loads the course from the URL and the student from the
// request body, answering the error response itself when either is missing.
func (h *Handler) resolveRosterPair(ctx context.Context, w http.ResponseWriter, r *http.Request) (courseID, studentID primitive.ObjectID, ok bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Course not found")
		return
	}

	var in rosterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.ValidationFailed(w, res.Messages())
		return
	}

	sid, err := primitive.ObjectIDFromHex(in.StudentID)
	if err != nil {
		respond.NotFound(w, "Student not found")
		return
	}

	if _, err := coursestore.New(h.DB).GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Course not found")
			return
		}
		h.Log.Error("roster: loading course", zap.Error(err))
		respond.ServerError(w)
		return
	}
	if _, err := userstore.New(h.DB).GetStudentByID(ctx, sid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Student not found")
			return
		}
		h.Log.Error("roster: loading student", zap.Error(err))
		respond.ServerError(w)
		return
	}

	return id, sid, true
}

// HandleAddStudent handles POST /courses/students/{id}: enrolls a student,
// writing both sides of the relation in one transaction.
func (h *Handler) HandleAddStudent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	courseID, studentID, ok := h.resolveRosterPair(ctx, w, r)
	if !ok {
		return
	}

	courses := coursestore.New(h.DB)
	users := userstore.New(h.DB)

	err := txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if err := courses.PushStudent(ctx, courseID, studentID); err != nil {
			return err
		}
		return users.PushCourse(ctx, studentID, courseID)
	})
	if err != nil {
		h.Log.Error("roster: adding student", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "Add Student Success", nil)
}

// HandleRemoveStudent handles PUT /courses/students/{id}: the symmetric
// pull from both sides.
func (h *Handler) HandleRemoveStudent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	courseID, studentID, ok := h.resolveRosterPair(ctx, w, r)
	if !ok {
		return
	}

	courses := coursestore.New(h.DB)
	users := userstore.New(h.DB)

	err := txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		if err := courses.PullStudent(ctx, courseID, studentID); err != nil {
			return err
		}
		return users.PullCourse(ctx, studentID, courseID)
	})
	if err != nil {
		h.Log.Error("roster: removing student", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "Remove Student Success", nil)
}
