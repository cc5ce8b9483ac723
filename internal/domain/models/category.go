// internal/domain/models/category.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is seed data the catalog groups courses under. Categories are
// never deleted through the API; the Courses list is maintained alongside
// course create/update/delete.
type Category struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name    string               `bson:"name" json:"name"`
	NameCI  string               `bson:"name_ci" json:"-"`
	Courses []primitive.ObjectID `bson:"courses" json:"courses"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
