// internal/app/store/contents/contentstore.go
package contentstore

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
	return &Store{c: db.Collection("course_contents")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.CourseContent, error) {
	var content models.CourseContent
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&content); err != nil {
		return models.CourseContent{}, err
	}
	return content, nil
}

// Create inserts a content item. The parent course's list is appended by
// the caller inside the same transaction.
func (s *Store) Create(ctx context.Context, content models.CourseContent) (models.CourseContent, error) {
	now := time.Now().UTC()
	content.ID = primitive.NewObjectID()
	content.CreatedAt = now
	content.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, content); err != nil {
		return models.CourseContent{}, err
	}
	return content, nil
}

// Update rewrites a content item's payload. The discriminator decides which
// field carries the body, so the unused one is cleared.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, title, kind, youtubeID, text string) error {
	set := bson.M{
		"title":      title,
		"type":       kind,
		"updated_at": time.Now().UTC(),
	}
	unset := bson.M{}
	switch kind {
	case models.ContentTypeVideo:
		set["youtubeId"] = youtubeID
		unset["text"] = ""
	case models.ContentTypeText:
		set["text"] = text
		unset["youtubeId"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	_, err := s.c.UpdateByID(ctx, id, update)
	return err
}

// ListByIDs loads contents preserving the order of ids, which is the
// course's display order. Missing ids are skipped.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.CourseContent, error) {
	if len(ids) == 0 {
		return []models.CourseContent{}, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	byID := make(map[primitive.ObjectID]models.CourseContent, len(ids))
	for cur.Next(ctx) {
		var content models.CourseContent
		if err := cur.Decode(&content); err != nil {
			return nil, err
		}
		byID[content.ID] = content
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	ordered := make([]models.CourseContent, 0, len(ids))
	for _, id := range ids {
		if content, ok := byID[id]; ok {
			ordered = append(ordered, content)
		}
	}
	return ordered, nil
}

// Delete removes a content item by ID. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByCourse removes all contents belonging to a course. Returns the
// number of documents deleted.
func (s *Store) DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"course": courseID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
