// internal/app/store/transactions/transactionstore.go
package transactionstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("transactions")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Transaction, error) {
	var tx models.Transaction
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&tx); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// Create inserts a pending transaction for a newly signed-up manager. Its
// id becomes the order_id the payment gateway calls back with.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, price int64) (models.Transaction, error) {
	now := time.Now().UTC()
	tx := models.Transaction{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Price:     price,
		Status:    models.TransactionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, tx); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// SetStatus moves a transaction to its new status. Returns the number of
// documents matched (0 when the order id is unknown).
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (int64, error) {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// HasSuccessful reports whether the user has at least one successful
// payment on record.
func (s *Store) HasSuccessful(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"user":   userID,
		"status": models.TransactionSuccess,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
