// internal/domain/models/content.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Content item kinds. The discriminator decides which payload field is
// required: YoutubeID for video, Text for text.
const (
	ContentTypeVideo = "video"
	ContentTypeText  = "text"
)

// CourseContent is one lesson unit. The parent course keeps the ordered
// list of content ids; CourseID is the back-reference.
type CourseContent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Type      string             `bson:"type" json:"type"` // video | text
	CourseID  primitive.ObjectID `bson:"course" json:"course"`
	YoutubeID string             `bson:"youtubeId,omitempty" json:"youtubeId,omitempty"`
	Text      string             `bson:"text,omitempty" json:"text,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
