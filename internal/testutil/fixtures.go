package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateManager creates a manager user with the given name and email.
func (f *Fixtures) CreateManager(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Email:     email,
		Password:  "$2a$12$testhashnotloginusable000000000000000000000000000000",
		Photo:     models.DefaultPhoto,
		Role:      models.RoleManager,
		Courses:   []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test manager: %v", err)
	}
	return user
}

// CreateStudent creates a student user owned by the given manager.
func (f *Fixtures) CreateStudent(ctx context.Context, name, email string, managerID primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Email:     email,
		Password:  "$2a$12$testhashnotloginusable000000000000000000000000000000",
		Photo:     models.DefaultPhoto,
		Role:      models.RoleStudent,
		ManagerID: &managerID,
		Courses:   []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return user
}

// CreateCategory creates a category with the given name.
func (f *Fixtures) CreateCategory(ctx context.Context, name string) models.Category {
	f.t.Helper()

	now := time.Now().UTC()
	cat := models.Category{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Courses:   []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("categories").InsertOne(ctx, cat); err != nil {
		f.t.Fatalf("failed to create test category: %v", err)
	}
	return cat
}

// CreateCourse creates a course owned by managerID in categoryID, and keeps
// both back-reference lists consistent the way the handlers do.
func (f *Fixtures) CreateCourse(ctx context.Context, name string, categoryID, managerID primitive.ObjectID) models.Course {
	f.t.Helper()

	now := time.Now().UTC()
	course := models.Course{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Tagline:     "Learn " + name + " from scratch",
		Description: "A complete walkthrough of " + name + " for beginners.",
		CategoryID:  categoryID,
		ManagerID:   managerID,
		Students:    []primitive.ObjectID{},
		Contents:    []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("courses").InsertOne(ctx, course); err != nil {
		f.t.Fatalf("failed to create test course: %v", err)
	}

	push := map[string]any{"$push": map[string]any{"courses": course.ID}}
	if _, err := f.db.Collection("categories").UpdateByID(ctx, categoryID, push); err != nil {
		f.t.Fatalf("failed to link course to category: %v", err)
	}
	if _, err := f.db.Collection("users").UpdateByID(ctx, managerID, push); err != nil {
		f.t.Fatalf("failed to link course to manager: %v", err)
	}

	return course
}

// CreateVideoContent creates a video lesson for the given course and
// appends it to the course's content list.
func (f *Fixtures) CreateVideoContent(ctx context.Context, title string, courseID primitive.ObjectID) models.CourseContent {
	f.t.Helper()
	return f.createContent(ctx, models.CourseContent{
		Title:     title,
		Type:      models.ContentTypeVideo,
		CourseID:  courseID,
		YoutubeID: "dQw4w9WgXcQ",
	})
}

// CreateTextContent creates a text lesson for the given course and appends
// it to the course's content list.
func (f *Fixtures) CreateTextContent(ctx context.Context, title string, courseID primitive.ObjectID) models.CourseContent {
	f.t.Helper()
	return f.createContent(ctx, models.CourseContent{
		Title:    title,
		Type:     models.ContentTypeText,
		CourseID: courseID,
		Text:     "<p>Lesson body for " + title + ".</p>",
	})
}

func (f *Fixtures) createContent(ctx context.Context, content models.CourseContent) models.CourseContent {
	f.t.Helper()

	now := time.Now().UTC()
	content.ID = primitive.NewObjectID()
	content.CreatedAt = now
	content.UpdatedAt = now

	if _, err := f.db.Collection("course_contents").InsertOne(ctx, content); err != nil {
		f.t.Fatalf("failed to create test content: %v", err)
	}

	push := map[string]any{"$push": map[string]any{"contents": content.ID}}
	if _, err := f.db.Collection("courses").UpdateByID(ctx, content.CourseID, push); err != nil {
		f.t.Fatalf("failed to link content to course: %v", err)
	}

	return content
}

// Enroll adds a student to a course's roster and the course to the
// student's enrollment list.
func (f *Fixtures) Enroll(ctx context.Context, courseID, studentID primitive.ObjectID) {
	f.t.Helper()

	if _, err := f.db.Collection("courses").UpdateByID(ctx, courseID,
		map[string]any{"$push": map[string]any{"students": studentID}}); err != nil {
		f.t.Fatalf("failed to add student to roster: %v", err)
	}
	if _, err := f.db.Collection("users").UpdateByID(ctx, studentID,
		map[string]any{"$push": map[string]any{"courses": courseID}}); err != nil {
		f.t.Fatalf("failed to add course to student: %v", err)
	}
}

// CreateTransaction creates a payment transaction for the given user.
func (f *Fixtures) CreateTransaction(ctx context.Context, userID primitive.ObjectID, price int64, status string) models.Transaction {
	f.t.Helper()

	now := time.Now().UTC()
	tx := models.Transaction{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Price:     price,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("transactions").InsertOne(ctx, tx); err != nil {
		f.t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
