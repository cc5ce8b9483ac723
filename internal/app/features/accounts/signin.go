// internal/app/features/accounts/signin.go
package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	transactionstore "github.com/bintangnugrahaa/course-lms/internal/app/store/transactions"
	userstore "github.com/bintangnugrahaa/course-lms/internal/app/store/users"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/inputval"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
)

type signInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// HandleSignIn handles POST /sign-in. On success it issues the bearer token
// the dashboard stores for subsequent requests.
func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var in signInInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}

	if res := inputval.Validate(in); res.HasErrors() {
		respond.ValidationFailed(w, res.Messages())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := userstore.New(h.DB).GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Email not found")
			return
		}
		h.Log.Error("sign-in: loading user", zap.Error(err))
		respond.ServerError(w)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		respond.Unauthorized(w, "Incorrect password")
		return
	}

	token, err := h.Tokens.Generate(user.ID.Hex(), user.Role)
	if err != nil {
		h.Log.Error("sign-in: issuing token", zap.Error(err))
		respond.ServerError(w)
		return
	}

	data := map[string]any{
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"token": token,
	}

	// Managers pay a one-time subscription at sign-up; the dashboard uses
	// this flag to keep nagging until the gateway confirms the payment.
	if user.Role == models.RoleManager {
		verified, err := transactionstore.New(h.DB).HasSuccessful(ctx, user.ID)
		if err != nil {
			h.Log.Error("sign-in: checking payment status", zap.Error(err))
			respond.ServerError(w)
			return
		}
		data["verified"] = verified
	}

	respond.OK(w, "Sign In Success", data)
}
