// internal/app/features/students/handler.go
package students

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
)

// Handler holds the dependencies shared by the student management handlers.
type Handler struct {
	DB      *mongo.Database
	Uploads *uploads.Uploader
	Log     *zap.Logger
}

// NewHandler constructs a students Handler.
func NewHandler(db *mongo.Database, up *uploads.Uploader, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Uploads: up,
		Log:     logger,
	}
}
