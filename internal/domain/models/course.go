// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is owned by exactly one manager and belongs to exactly one
// category. Students holds the roster; Contents is ordered and matches the
// lesson display order.
type Course struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	NameCI      string               `bson:"name_ci" json:"-"`
	Tagline     string               `bson:"tagline" json:"tagline"`
	Description string               `bson:"description" json:"description"`
	Thumbnail   string               `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	CategoryID  primitive.ObjectID   `bson:"category" json:"category"`
	ManagerID   primitive.ObjectID   `bson:"manager" json:"manager"`
	Students    []primitive.ObjectID `bson:"students" json:"students"`
	Contents    []primitive.ObjectID `bson:"contents" json:"contents"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasThumbnail reports whether a thumbnail file exists for this course.
func (c Course) HasThumbnail() bool {
	return c.Thumbnail != ""
}
