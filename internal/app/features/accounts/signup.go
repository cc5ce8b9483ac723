// internal/app/features/accounts/signup.go
package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	transactionstore "github.com/bintangnugrahaa/course-lms/internal/app/store/transactions"
	userstore "github.com/bintangnugrahaa/course-lms/internal/app/store/users"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/inputval"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/txn"
	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
)

const bcryptCost = 12

type signUpInput struct {
	Name     string `json:"name" validate:"required,min=5"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// HandleSignUp handles POST /sign-up. It registers a manager account with a
// pending payment transaction and returns the payment redirect URL carrying
// the transaction id as order_id.
func (h *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var in signUpInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}

	if res := inputval.Validate(in); res.HasErrors() {
		respond.ValidationFailed(w, res.Messages())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		h.Log.Error("sign-up: hashing password", zap.Error(err))
		respond.ServerError(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users := userstore.New(h.DB)
	transactions := transactionstore.New(h.DB)

	var tx models.Transaction
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		user, err := users.Create(ctx, models.User{
			Name:     in.Name,
			Email:    in.Email,
			Password: string(hash),
			Role:     models.RoleManager,
		})
		if err != nil {
			return err
		}

		tx, err = transactions.Create(ctx, user.ID, ManagerPrice)
		return err
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			respond.BadRequest(w, "Email already registered")
			return
		}
		h.Log.Error("sign-up: creating account", zap.Error(err))
		respond.ServerError(w)
		return
	}

	respond.OK(w, "Sign Up Success", map[string]any{
		"midtrans_payment_url": h.PaymentURL + "?order_id=" + tx.ID.Hex(),
	})
}
