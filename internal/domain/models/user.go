// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user document can carry. Role is set once at creation and never
// rewritten by update handlers.
const (
	RoleManager = "manager"
	RoleStudent = "student"
)

// DefaultPhoto is the placeholder filename assigned when no image was uploaded.
const DefaultPhoto = "default.png"

// User represents both managers and the students they own.
//
// NOTE:
//   - ManagerID is set for students only and points at the manager who
//     created the account.
//   - Courses is denormalized: owned courses for managers, enrollments for
//     students. It is only ever mutated in the same transaction as the
//     course-side write.
type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name      string               `bson:"name" json:"name"`
	NameCI    string               `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email     string               `bson:"email" json:"email"`
	Password  string               `bson:"password" json:"-"` // bcrypt hash
	Photo     string               `bson:"photo" json:"photo"`
	Role      string               `bson:"role" json:"role"` // manager | student
	ManagerID *primitive.ObjectID  `bson:"manager,omitempty" json:"manager,omitempty"`
	Courses   []primitive.ObjectID `bson:"courses" json:"courses"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
