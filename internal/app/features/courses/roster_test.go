package courses_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
	"github.com/bintangnugrahaa/course-lms/internal/testutil"
)

func TestServeCourseStudents(t *testing.T) {
	h := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, h.DB)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")
	cat := fixtures.CreateCategory(ctx, "Programming")
	course := fixtures.CreateCourse(ctx, "Go From Scratch", cat.ID, manager.ID)
	first := fixtures.CreateStudent(ctx, "Abe Early", "abe@example.com", manager.ID)
	second := fixtures.CreateStudent(ctx, "Zoe Late", "zoe@example.com", manager.ID)
	fixtures.Enroll(ctx, course.ID, first.ID)
	fixtures.Enroll(ctx, course.ID, second.ID)

	req := testutil.WithChiURLParam(
		testutil.NewRequest("GET", "/courses/students/"+course.ID.Hex()), "id", course.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeCourseStudents(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	env := rec.DecodeEnvelope(t)
	if env.Message != "Get Course Students Success" {
		t.Errorf("message = %q", env.Message)
	}

	var roster []struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		PhotoURL string `json:"photo_url"`
	}
	if err := json.Unmarshal(env.Data, &roster); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("got %d students, want 2", len(roster))
	}
	// Roster order follows the course's enrollment list.
	if roster[0].Name != "Abe Early" || roster[1].Name != "Zoe Late" {
		t.Errorf("roster order = %q, %q", roster[0].Name, roster[1].Name)
	}
	if roster[0].PhotoURL == "" {
		t.Error("expected a photo_url")
	}
}

func TestHandleAddStudent(t *testing.T) {
	h := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, h.DB)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")
	cat := fixtures.CreateCategory(ctx, "Programming")
	course := fixtures.CreateCourse(ctx, "Go From Scratch", cat.ID, manager.ID)
	student := fixtures.CreateStudent(ctx, "Abe Early", "abe@example.com", manager.ID)

	req := testutil.NewJSONRequest(t, "POST", "/courses/students/"+course.ID.Hex(),
		map[string]string{"studentId": student.ID.Hex()})
	req = testutil.WithChiURLParam(req, "id", course.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleAddStudent(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Add Student Success")

	// Both sides of the relation are written.
	var gotCourse models.Course
	if err := h.DB.Collection("courses").FindOne(ctx, bson.M{"_id": course.ID}).Decode(&gotCourse); err != nil {
		t.Fatalf("loading course: %v", err)
	}
	if len(gotCourse.Students) != 1 || gotCourse.Students[0] != student.ID {
		t.Errorf("course students = %v, want [%v]", gotCourse.Students, student.ID)
	}
	var gotStudent models.User
	if err := h.DB.Collection("users").FindOne(ctx, bson.M{"_id": student.ID}).Decode(&gotStudent); err != nil {
		t.Fatalf("loading student: %v", err)
	}
	if len(gotStudent.Courses) != 1 || gotStudent.Courses[0] != course.ID {
		t.Errorf("student courses = %v, want [%v]", gotStudent.Courses, course.ID)
	}
}

func TestHandleAddStudent_UnknownStudent(t *testing.T) {
	h := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, h.DB)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")
	cat := fixtures.CreateCategory(ctx, "Programming")
	course := fixtures.CreateCourse(ctx, "Go From Scratch", cat.ID, manager.ID)

	req := testutil.NewJSONRequest(t, "POST", "/courses/students/"+course.ID.Hex(),
		map[string]string{"studentId": "64f0c2ab1234567890abcdef"})
	req = testutil.WithChiURLParam(req, "id", course.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleAddStudent(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Student not found")
}

func TestHandleAddStudent_ManagerIsNotEnrollable(t *testing.T) {
	h := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, h.DB)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")
	cat := fixtures.CreateCategory(ctx, "Programming")
	course := fixtures.CreateCourse(ctx, "Go From Scratch", cat.ID, manager.ID)

	// A manager id resolves as a user but not as a student.
	req := testutil.NewJSONRequest(t, "POST", "/courses/students/"+course.ID.Hex(),
		map[string]string{"studentId": manager.ID.Hex()})
	req = testutil.WithChiURLParam(req, "id", course.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleAddStudent(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Student not found")
}

func TestHandleRemoveStudent(t *testing.T) {
	h := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, h.DB)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")
	cat := fixtures.CreateCategory(ctx, "Programming")
	course := fixtures.CreateCourse(ctx, "Go From Scratch", cat.ID, manager.ID)
	student := fixtures.CreateStudent(ctx, "Abe Early", "abe@example.com", manager.ID)
	fixtures.Enroll(ctx, course.ID, student.ID)

	req := testutil.NewJSONRequest(t, "PUT", "/courses/students/"+course.ID.Hex(),
		map[string]string{"studentId": student.ID.Hex()})
	req = testutil.WithChiURLParam(req, "id", course.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleRemoveStudent(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Remove Student Success")

	var gotCourse models.Course
	if err := h.DB.Collection("courses").FindOne(ctx, bson.M{"_id": course.ID}).Decode(&gotCourse); err != nil {
		t.Fatalf("loading course: %v", err)
	}
	if len(gotCourse.Students) != 0 {
		t.Errorf("course still lists the student: %v", gotCourse.Students)
	}
	var gotStudent models.User
	if err := h.DB.Collection("users").FindOne(ctx, bson.M{"_id": student.ID}).Decode(&gotStudent); err != nil {
		t.Fatalf("loading student: %v", err)
	}
	if len(gotStudent.Courses) != 0 {
		t.Errorf("student still lists the course: %v", gotStudent.Courses)
	}
}
