// internal/app/features/courses/list.go
package courses

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	categorystore "github.com/bintangnugrahaa/course-lms/internal/app/store/categories"
	coursestore "github.com/bintangnugrahaa/course-lms/internal/app/store/courses"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/auth"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/respond"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
)

type courseSummary struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Thumbnail     string       `json:"thumbnail,omitempty"`
	ThumbnailURL  string       `json:"thumbnail_url"`
	Category      categoryName `json:"category"`
	TotalStudents int          `json:"total_students"`
}

type categoryName struct {
	Name string `json:"name"`
}

// ServeCourseList handles GET /courses. It returns the calling manager's
// courses with category name, thumbnail URL, and student count.
func (h *Handler) ServeCourseList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		respond.Unauthorized(w, "Unauthorized")
		return
	}
	managerID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		respond.Unauthorized(w, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	courses, err := coursestore.New(h.DB).ListByManager(ctx, managerID)
	if err != nil {
		h.Log.Error("courses: listing", zap.Error(err))
		respond.ServerError(w)
		return
	}

	// Resolve category names in one pass; a dangling reference renders as
	// an empty name rather than failing the list.
	catNames := map[primitive.ObjectID]string{}
	cats, err := categorystore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("courses: listing categories", zap.Error(err))
		respond.ServerError(w)
		return
	}
	for _, cat := range cats {
		catNames[cat.ID] = cat.Name
	}

	summaries := make([]courseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, courseSummary{
			ID:            course.ID.Hex(),
			Name:          course.Name,
			Thumbnail:     course.Thumbnail,
			ThumbnailURL:  h.Uploads.PublicURL(uploads.DirCourses, course.Thumbnail),
			Category:      categoryName{Name: catNames[course.CategoryID]},
			TotalStudents: len(course.Students),
		})
	}

	respond.OK(w, "Get Courses Success", summaries)
}
