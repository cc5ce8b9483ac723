package payment_test

import (
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/bintangnugrahaa/course-lms/internal/app/features/payment"
	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
	"github.com/bintangnugrahaa/course-lms/internal/testutil"
)

func newTestHandler(t *testing.T) *payment.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return payment.NewHandler(db, zap.NewNop())
}

func TestHandleNotification_StatusMapping(t *testing.T) {
	cases := []struct {
		gateway string
		want    string
	}{
		{"capture", models.TransactionSuccess},
		{"settlement", models.TransactionSuccess},
		{"deny", models.TransactionFailed},
		{"cancel", models.TransactionFailed},
		{"expire", models.TransactionFailed},
		{"failure", models.TransactionFailed},
		{"pending", models.TransactionPending}, // unrecognized: untouched
	}

	for _, tc := range cases {
		t.Run(tc.gateway, func(t *testing.T) {
			h := newTestHandler(t)
			fixtures := testutil.NewFixtures(t, h.DB)
			ctx, cancel := testutil.TestContext()
			defer cancel()

			manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")
			tx := fixtures.CreateTransaction(ctx, manager.ID, 280000, models.TransactionPending)

			req := testutil.NewJSONRequest(t, "POST", "/payment", map[string]string{
				"order_id":           tx.ID.Hex(),
				"transaction_status": tc.gateway,
			})
			rec := testutil.NewRecorder()
			h.HandleNotification(rec.ResponseRecorder, req)

			rec.AssertStatus(t, http.StatusOK)
			rec.AssertContains(t, "Handle Payment Success")

			var got models.Transaction
			if err := h.DB.Collection("transactions").FindOne(ctx, bson.M{"_id": tx.ID}).Decode(&got); err != nil {
				t.Fatalf("loading transaction: %v", err)
			}
			if got.Status != tc.want {
				t.Errorf("status = %q, want %q", got.Status, tc.want)
			}
		})
	}
}

func TestHandleNotification_MissingFields(t *testing.T) {
	h := newTestHandler(t)

	cases := []map[string]string{
		{"transaction_status": "settlement"},
		{"order_id": "64f0c2ab1234567890abcdef"},
		{},
	}
	for _, body := range cases {
		req := testutil.NewJSONRequest(t, "POST", "/payment", body)
		rec := testutil.NewRecorder()
		h.HandleNotification(rec.ResponseRecorder, req)

		rec.AssertStatus(t, http.StatusBadRequest)
		rec.AssertContains(t, "Invalid payment payload")
	}
}

func TestHandleNotification_UnknownOrderIsAcknowledged(t *testing.T) {
	h := newTestHandler(t)

	// The gateway retries on non-200, so unknown and malformed order ids
	// are acknowledged rather than rejected.
	for _, orderID := range []string{"64f0c2ab1234567890abcdef", "not-a-hex-id"} {
		req := testutil.NewJSONRequest(t, "POST", "/payment", map[string]string{
			"order_id":           orderID,
			"transaction_status": "settlement",
		})
		rec := testutil.NewRecorder()
		h.HandleNotification(rec.ResponseRecorder, req)

		rec.AssertStatus(t, http.StatusOK)
		rec.AssertContains(t, "Handle Payment Success")
	}
}
