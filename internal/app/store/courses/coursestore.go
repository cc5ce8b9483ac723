// internal/app/store/courses/coursestore.go
package coursestore

import (
	"context"
	"time"

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

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("courses")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var course models.Course
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// ListByManager returns the manager's courses sorted by folded name.
func (s *Store) ListByManager(ctx context.Context, managerID primitive.ObjectID) ([]models.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"manager": managerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var courses []models.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Create inserts a course. The category and manager back-references are
// written by the caller inside the same transaction.
func (s *Store) Create(ctx context.Context, course models.Course) (models.Course, error) {
	now := time.Now().UTC()
	course.ID = primitive.NewObjectID()
	course.NameCI = text.Fold(course.Name)
	if course.Students == nil {
		course.Students = []primitive.ObjectID{}
	}
	if course.Contents == nil {
		course.Contents = []primitive.ObjectID{}
	}
	course.CreatedAt = now
	course.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, course); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// UpdateInfo rewrites a course's editable fields. The thumbnail is only
// replaced when non-empty.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, tagline, description string, categoryID primitive.ObjectID, thumbnail string) error {
	set := bson.M{
		"name":        name,
		"name_ci":     text.Fold(name),
		"tagline":     tagline,
		"description": description,
		"category":    categoryID,
		"updated_at":  time.Now().UTC(),
	}
	if thumbnail != "" {
		set["thumbnail"] = thumbnail
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// PushStudent adds a student to the course roster.
func (s *Store) PushStudent(ctx context.Context, courseID, studentID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, courseID, bson.M{
		"$push": bson.M{"students": studentID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// PullStudent removes a student from the course roster.
func (s *Store) PullStudent(ctx context.Context, courseID, studentID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, courseID, bson.M{
		"$pull": bson.M{"students": studentID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// PullStudentFromAll removes a student from every course roster in one
// write. Used when a student account is deleted.
func (s *Store) PullStudentFromAll(ctx context.Context, studentID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"students": studentID},
		bson.M{
			"$pull": bson.M{"students": studentID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}

// PushContent appends a content id to the course's ordered content list.
func (s *Store) PushContent(ctx context.Context, courseID, contentID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, courseID, bson.M{
		"$push": bson.M{"contents": contentID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// PullContent removes a content id from the course's content list.
func (s *Store) PullContent(ctx context.Context, courseID, contentID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, courseID, bson.M{
		"$pull": bson.M{"contents": contentID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// Delete removes a course by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
