// internal/app/features/payment/webhook.go
package payment

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	transactionstore "github.com/bintangnugrahaa/course-lms/internal/app/store/transactions"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
)

// notification is the subset of the Midtrans HTTP notification payload the
// webhook acts on. order_id carries the transaction document id.
type notification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
}

// HandleNotification handles POST /payment. Gateway statuses map onto the
// stored transaction status: capture/settlement mark it successful,
// deny/cancel/expire/failure mark it failed, anything else is ignored. The
// gateway expects 200 even for order ids it made up, so an unknown or
// malformed order_id is not an error.
func (h *Handler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	var in notification
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.BadRequest(w, "Invalid payment payload")
		return
	}
	if in.OrderID == "" || in.TransactionStatus == "" {
		respond.BadRequest(w, "Invalid payment payload")
		return
	}

	status := ""
	switch in.TransactionStatus {
	case "capture", "settlement":
		status = models.TransactionSuccess
	case "deny", "cancel", "expire", "failure":
		status = models.TransactionFailed
	}

	if status != "" {
		if id, err := primitive.ObjectIDFromHex(in.OrderID); err == nil {
			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			defer cancel()

			matched, err := transactionstore.New(h.DB).SetStatus(ctx, id, status)
			if err != nil {
				h.Log.Error("payment: updating transaction", zap.Error(err))
				respond.ServerError(w)
				return
			}
			if matched == 0 {
				h.Log.Warn("payment: notification for unknown transaction",
					zap.String("order_id", in.OrderID),
					zap.String("transaction_status", in.TransactionStatus))
			}
		} else {
			h.Log.Warn("payment: malformed order id", zap.String("order_id", in.OrderID))
		}
	}

	respond.OK(w, "Handle Payment Success", struct{}{})
}
