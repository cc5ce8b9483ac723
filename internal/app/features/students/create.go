// internal/app/features/students/create.go
package students

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/bintangnugrahaa/course-lms/internal/app/store/users"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/auth"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/inputval"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
)

const (
	maxUploadMemory = 32 << 20
	bcryptCost      = 12
)

type createStudentInput struct {
	Name     string `json:"name" validate:"required,min=5"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// parseStudentForm reads the multipart fields and the optional avatar file
// header. Nothing is written to storage here; the file is saved only after
// validation passes.
func parseStudentForm(r *http.Request) (name, email, password string, avatar *multipart.FileHeader, err error) {
	if err = r.ParseMultipartForm(maxUploadMemory); err != nil {
		return
	}
	name = r.FormValue("name")
	email = r.FormValue("email")
	password = r.FormValue("password")
	if files := r.MultipartForm.File["avatar"]; len(files) > 0 {
		avatar = files[0]
	}
	return
}

// HandleCreateStudent handles POST /students (multipart, field `avatar`).
// The new account is owned by the calling manager.
func (h *Handler) HandleCreateStudent(w http.ResponseWriter, r *http.Request) {
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

	name, email, password, avatar, err := parseStudentForm(r)
	if err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	in := createStudentInput{Name: name, Email: email, Password: password}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.ValidationFailed(w, res.Messages())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		h.Log.Error("students: hashing password", zap.Error(err))
		respond.ServerError(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

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

	student := models.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  string(hash),
		Role:      models.RoleStudent,
		ManagerID: &managerID,
	}
	if photo != "" {
		student.Photo = photo
	}

	if _, err := userstore.New(h.DB).Create(ctx, student); err != nil {
		if photo != "" {
			if derr := h.Uploads.Delete(ctx, uploads.DirStudents, photo); derr != nil {
				h.Log.Warn("students: removing orphaned avatar", zap.Error(derr))
			}
		}
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			respond.BadRequest(w, "Email already registered")
			return
		}
		h.Log.Error("students: creating", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "Create Student Success", nil)
}
