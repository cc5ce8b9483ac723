// internal/app/system/txn/txn.go

// Package txn wraps multi-document writes in a MongoDB transaction so the
// denormalized membership arrays (category↔course, manager↔course,
// course↔student) never drift from the primary document.
//
// Standalone servers and some DocumentDB deployments reject sessions or
// transactions; in that case the body runs without a transaction, which
// restores the sequential-write behavior, and the downgrade is logged.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a transaction on db's client. The context passed
// to fn carries the session; all collection operations inside fn must use
// it for the writes to be atomic.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logDowngrade(log, err)
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logDowngrade(log, err)
		return fn(ctx)
	}
	return err
}

func logDowngrade(log *zap.Logger, err error) {
	if log != nil {
		log.Warn("transactions unavailable; running writes sequentially", zap.Error(err))
	}
}

// Server error codes that indicate transactions cannot be used here
// (20 IllegalOperation on standalone, 51 and 263 from DocumentDB).
var notSupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// IsNotSupported reports whether err means the deployment cannot run
// multi-document transactions (as opposed to the transaction failing).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) && notSupportedCodes[ce.Code] {
		return true
	}

	msg := strings.ToLower(err.Error())
	has := func(s string) bool { return strings.Contains(msg, s) }
	if has("transaction") && (has("replica set") || has("session") || has("illegal operation")) {
		return true
	}
	if has("session") && has("not supported") {
		return true
	}
	return false
}
