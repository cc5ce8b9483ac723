package bootstrap

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/bintangnugrahaa/course-lms/internal/testutil"
)

func TestEnsureSchema_SeedsCategoriesOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	if err := EnsureSchema(ctx, nil, AppConfig{}, deps, zap.NewNop()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	n, err := db.Collection("categories").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("counting categories: %v", err)
	}
	if n != int64(len(seedCategories)) {
		t.Errorf("got %d categories, want %d", n, len(seedCategories))
	}

	// A second run must not duplicate the seed.
	if err := EnsureSchema(ctx, nil, AppConfig{}, deps, zap.NewNop()); err != nil {
		t.Fatalf("EnsureSchema rerun failed: %v", err)
	}
	n, err = db.Collection("categories").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("counting categories: %v", err)
	}
	if n != int64(len(seedCategories)) {
		t.Errorf("rerun: got %d categories, want %d", n, len(seedCategories))
	}
}
