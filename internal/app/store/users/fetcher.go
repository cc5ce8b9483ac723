package userstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bintangnugrahaa/course-lms/internal/app/system/auth"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
)

// NewFetcher returns an auth.UserFetcher that loads fresh user data for each
// authenticated request. A token whose subject no longer exists resolves to
// (nil, nil) so the middleware answers 401, not 500.
func NewFetcher(db *mongo.Database) auth.UserFetcher {
	c := db.Collection("users")

	return func(ctx context.Context, userID string) (*auth.TokenUser, error) {
		oid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return nil, nil
		}

		ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
		defer cancel()

		var u models.User
		proj := options.FindOne().SetProjection(bson.M{
			"_id":   1,
			"name":  1,
			"email": 1,
			"role":  1,
		})
		if err := c.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&u); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, nil
			}
			return nil, err
		}

		return &auth.TokenUser{
			ID:    u.ID.Hex(),
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
		}, nil
	}
}
