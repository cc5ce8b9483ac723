// internal/app/system/txn/txn_test.go
package txn

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/bintangnugrahaa/course-lms/internal/testutil"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"ordinary write error", errors.New("duplicate key error"), false},
		{
			"standalone rejects transaction numbers",
			mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"},
			true,
		},
		{
			"documentdb illegal operation",
			mongo.CommandError{Code: 51, Message: "Illegal operation"},
			true,
		},
		{
			"documentdb operation not permitted in transaction",
			mongo.CommandError{Code: 263, Message: "OperationNotSupportedInTransaction"},
			true,
		},
		{
			"transient transaction error keeps code",
			mongo.CommandError{Code: 112, Message: "WriteConflict"},
			false,
		},
		{
			"wrapped command error",
			fmt.Errorf("enrolling student: %w", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member"}),
			true,
		},
		{
			"message mentions replica set",
			errors.New("cannot start transaction: this is not a replica set member"),
			true,
		},
		{
			"message mentions sessions unsupported",
			errors.New("Sessions Are Not Supported by this server"),
			true,
		},
		{
			"transaction mentioned alone is a real failure",
			errors.New("transaction aborted"),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

// Enrolling a student touches both the course roster and the student's
// course list; Run must land both writes whether the server supports
// transactions or falls back to sequential writes.
func TestRun_AppliesBothMembershipWrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	courses := db.Collection("courses")
	users := db.Collection("users")

	err := Run(ctx, db, zap.NewNop(), func(sc context.Context) error {
		if _, err := courses.InsertOne(sc, bson.M{"name": "Go Basics", "students": bson.A{"s1"}}); err != nil {
			return err
		}
		_, err := users.InsertOne(sc, bson.M{"name": "Enrolled Student", "courses": bson.A{"c1"}})
		return err
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for coll, filter := range map[*mongo.Collection]bson.M{
		courses: {"name": "Go Basics"},
		users:   {"name": "Enrolled Student"},
	} {
		n, err := coll.CountDocuments(ctx, filter)
		if err != nil {
			t.Fatalf("count %s: %v", coll.Name(), err)
		}
		if n != 1 {
			t.Errorf("%s: got %d documents matching %v, want 1", coll.Name(), n, filter)
		}
	}
}

func TestRun_PropagatesBodyError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	wantErr := errors.New("course vanished mid-write")
	err := Run(ctx, db, zap.NewNop(), func(context.Context) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Run error = %v, want %v", err, wantErr)
	}
}
