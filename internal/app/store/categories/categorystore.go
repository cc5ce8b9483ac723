// internal/app/store/categories/categorystore.go
package categorystore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateCategoryName = errors.New("a category with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("categories")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	var cat models.Category
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cat); err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

// List returns every category sorted by folded name.
func (s *Store) List(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var cats []models.Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Create inserts a category. Used by the startup seeder.
func (s *Store) Create(ctx context.Context, name string) (models.Category, error) {
	now := time.Now().UTC()
	cat := models.Category{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Courses:   []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, cat); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Category{}, ErrDuplicateCategoryName
		}
		return models.Category{}, err
	}
	return cat, nil
}

// Count returns the number of categories. The seeder only runs on an empty
// collection.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// PushCourse appends a course id to a category's course list.
func (s *Store) PushCourse(ctx context.Context, categoryID, courseID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, categoryID, bson.M{
		"$push": bson.M{"courses": courseID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// PullCourse removes a course id from a category's course list.
func (s *Store) PullCourse(ctx context.Context, categoryID, courseID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, categoryID, bson.M{
		"$pull": bson.M{"courses": courseID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}
