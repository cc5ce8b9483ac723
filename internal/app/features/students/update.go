// internal/app/features/students/update.go
package students

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/bintangnugrahaa/course-lms/internal/app/store/users"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/inputval"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
)

type updateStudentInput struct {
	Name     string `json:"name" validate:"required,min=5"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

// HandleUpdateStudent handles PUT /students/{id} (multipart). An omitted
// password keeps the stored hash; an omitted avatar keeps the stored photo.
func (h *Handler) HandleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "Student not found")
		return
	}

	name, email, password, avatar, err := parseStudentForm(r)
	if err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	in := updateStudentInput{Name: name, Email: email, Password: password}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.ValidationFailed(w, res.Messages())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users := userstore.New(h.DB)
	old, err := users.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Student not found")
			return
		}
		h.Log.Error("students: loading for update", zap.Error(err))
		respond.ServerError(w)
		return
	}

	hash := ""
	if in.Password != "" {
		raw, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			h.Log.Error("students: hashing password", zap.Error(err))
			respond.ServerError(w)
			return
		}
		hash = string(raw)
	}

	photo := ""
	if avatar != nil {
		photo, err = h.Uploads.Save(ctx, uploads.DirStudents, avatar)
		if err != nil {
			if errors.Is(err, uploads.ErrNotImage) {
				respond.BadRequest(w, "Avatar must be an image")
				return
			}
			h.Log.Error("students: saving avatar", zap.Error(err))
			respond.ServerError(w)
			return
		}
	}

	if err := users.UpdateProfile(ctx, id, in.Name, in.Email, hash, photo); err != nil {
		if photo != "" {
			if derr := h.Uploads.Delete(ctx, uploads.DirStudents, photo); derr != nil {
				h.Log.Warn("students: removing orphaned avatar", zap.Error(derr))
			}
		}
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			respond.BadRequest(w, "Email already registered")
			return
		}
		h.Log.Error("students: updating", zap.Error(err))
		respond.ServerError(w)
		return
	}

	// The previous photo is unreferenced once the update commits.
	if photo != "" {
		if err := h.Uploads.Delete(ctx, uploads.DirStudents, old.Photo); err != nil {
			h.Log.Warn("students: removing replaced avatar", zap.Error(err))
		}
	}

	respond.OK(w, "Update Student Success", nil)
}
