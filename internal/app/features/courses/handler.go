// internal/app/features/courses/handler.go
package courses

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
)

// Handler is the shared dependency container for the courses feature. It
// holds the Mongo database, the upload store, and the logger so the catalog,
// content, and roster handlers can all share the same core dependencies.
type Handler struct {
	DB      *mongo.Database
	Uploads *uploads.Uploader
	Log     *zap.Logger
}

// NewHandler constructs a courses Handler. It is typically called from the
// bootstrap BuildHandler function, where the application's DB, uploader, and
// logger are already initialized.
func NewHandler(db *mongo.Database, up *uploads.Uploader, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Uploads: up,
		Log:     logger,
	}
}
