package transactionstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	transactionstore "github.com/bintangnugrahaa/course-lms/internal/app/store/transactions"
	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
	"github.com/bintangnugrahaa/course-lms/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := transactionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")

	tx, err := store.Create(ctx, manager.ID, 280000)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if tx.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if tx.Status != models.TransactionPending {
		t.Errorf("Status = %q, want %q", tx.Status, models.TransactionPending)
	}
	if tx.Price != 280000 {
		t.Errorf("Price = %d, want 280000", tx.Price)
	}
	if tx.CreatedAt.IsZero() || tx.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := transactionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")
	tx := fixtures.CreateTransaction(ctx, manager.ID, 280000, models.TransactionPending)

	matched, err := store.SetStatus(ctx, tx.ID, models.TransactionSuccess)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if matched != 1 {
		t.Errorf("matched %d documents, want 1", matched)
	}

	got, err := store.GetByID(ctx, tx.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.TransactionSuccess {
		t.Errorf("Status = %q, want %q", got.Status, models.TransactionSuccess)
	}

	// Unknown order ids match nothing and are not an error.
	matched, err = store.SetStatus(ctx, primitive.NewObjectID(), models.TransactionFailed)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if matched != 0 {
		t.Errorf("matched %d documents, want 0", matched)
	}
}

func TestStore_HasSuccessful(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := transactionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")

	ok, err := store.HasSuccessful(ctx, manager.ID)
	if err != nil {
		t.Fatalf("HasSuccessful failed: %v", err)
	}
	if ok {
		t.Error("expected no successful payments yet")
	}

	fixtures.CreateTransaction(ctx, manager.ID, 280000, models.TransactionFailed)
	fixtures.CreateTransaction(ctx, manager.ID, 280000, models.TransactionSuccess)

	ok, err = store.HasSuccessful(ctx, manager.ID)
	if err != nil {
		t.Fatalf("HasSuccessful failed: %v", err)
	}
	if !ok {
		t.Error("expected a successful payment to be found")
	}
}
