// internal/domain/models/transaction.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction status values. pending is the only non-terminal state:
// pending → success | failed, no transition back.
const (
	TransactionPending = "pending"
	TransactionSuccess = "success"
	TransactionFailed  = "failed"
)

// Transaction records a sign-up payment. Its id is the order_id the payment
// gateway echoes back into the webhook.
type Transaction struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user" json:"user"`
	Price  int64              `bson:"price" json:"price"`
	Status string             `bson:"status" json:"status"` // pending | success | failed

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
