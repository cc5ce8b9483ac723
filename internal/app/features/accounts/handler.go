// internal/app/features/accounts/handler.go
package accounts

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/bintangnugrahaa/course-lms/internal/app/system/auth"
)

// ManagerPrice is the one-time subscription price (IDR) charged at sign-up.
const ManagerPrice int64 = 280000

// Handler is the shared dependency container for sign-up and sign-in.
type Handler struct {
	DB         *mongo.Database
	Tokens     *auth.TokenManager
	PaymentURL string // payment gateway redirect base, order_id appended
	Log        *zap.Logger
}

// NewHandler constructs an accounts Handler. It is called from the bootstrap
// BuildHandler function, where the DB, token manager, and logger are already
// initialized.
func NewHandler(db *mongo.Database, tokens *auth.TokenManager, paymentURL string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Tokens:     tokens,
		PaymentURL: paymentURL,
		Log:        logger,
	}
}
