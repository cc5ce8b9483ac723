// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
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

var ErrDuplicateEmail = errors.New("a user with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetStudentByID loads a user by ObjectID, returning an error if the user
// does not exist or is not a student.
func (s *Store) GetStudentByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "role": models.RoleStudent}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. Normalized fields and timestamps are filled in
// here; Role and Password must already be set by the caller.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.NameCI = text.Fold(u.Name)
	u.Email = NormalizeEmail(u.Email)
	if u.Photo == "" {
		u.Photo = models.DefaultPhoto
	}
	if u.Courses == nil {
		u.Courses = []primitive.ObjectID{}
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateProfile rewrites a user's editable fields. Role is never touched.
// Password and photo are only rewritten when non-empty.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email, passwordHash, photo string) error {
	set := bson.M{
		"name":       name,
		"name_ci":    text.Fold(name),
		"email":      NormalizeEmail(email),
		"updated_at": time.Now().UTC(),
	}
	if passwordHash != "" {
		set["password"] = passwordHash
	}
	if photo != "" {
		set["photo"] = photo
	}

	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// ListStudents returns students sorted by folded name. When managerID is
// non-nil only that manager's students are returned.
func (s *Store) ListStudents(ctx context.Context, managerID *primitive.ObjectID) ([]models.User, error) {
	filter := bson.M{"role": models.RoleStudent}
	if managerID != nil {
		filter["manager"] = *managerID
	}

	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListByIDs loads the users for the given ids. Missing ids are skipped.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// PushCourse appends a course id to a user's course list.
func (s *Store) PushCourse(ctx context.Context, userID, courseID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, userID, bson.M{
		"$push": bson.M{"courses": courseID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// PullCourse removes a course id from a user's course list.
func (s *Store) PullCourse(ctx context.Context, userID, courseID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, userID, bson.M{
		"$pull": bson.M{"courses": courseID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// PullCourseFromUsers removes a course id from every listed user's course
// list in one write. Used when a course is deleted.
func (s *Store) PullCourseFromUsers(ctx context.Context, userIDs []primitive.ObjectID, courseID primitive.ObjectID) error {
	if len(userIDs) == 0 {
		return nil
	}
	_, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": userIDs}},
		bson.M{
			"$pull": bson.M{"courses": courseID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}

// Delete removes a user by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
