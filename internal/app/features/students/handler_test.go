package students_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bintangnugrahaa/course-lms/internal/app/features/students"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
	"github.com/bintangnugrahaa/course-lms/internal/testutil"
)

func newTestHandler(t *testing.T) *students.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	up := uploads.New(nil, "http://localhost:8080/uploads")
	return students.NewHandler(db, up, zap.NewNop())
}

func newMultipartRequest(t *testing.T, method, target string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("writing form field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing form: %v", err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestServeStudentList(t *testing.T) {
	h := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, h.DB)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")
	other := fixtures.CreateManager(ctx, "Omar Manager", "omar@example.com")
	fixtures.CreateStudent(ctx, "Zoe Late", "zoe@example.com", manager.ID)
	fixtures.CreateStudent(ctx, "Abe Early", "abe@example.com", manager.ID)
	fixtures.CreateStudent(ctx, "Noa Other", "noa@example.com", other.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/students",
		testutil.TestUser{ID: manager.ID.Hex(), Role: models.RoleManager})
	rec := testutil.NewRecorder()
	h.ServeStudentList(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	env := rec.DecodeEnvelope(t)
	if env.Message != "Get Students success" {
		t.Errorf("message = %q", env.Message)
	}

	var data []struct {
		Name     string `json:"name"`
		PhotoURL string `json:"photo_url"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
	if len(data) != 2 {
		t.Fatalf("got %d students, want the caller's 2", len(data))
	}
	// Sorted by folded name.
	if data[0].Name != "Abe Early" || data[1].Name != "Zoe Late" {
		t.Errorf("order = %q, %q", data[0].Name, data[1].Name)
	}
	if data[0].PhotoURL == "" {
		t.Error("expected a photo_url")
	}
}

func TestServeStudentDetail(t *testing.T) {
	h := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, h.DB)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")
	student := fixtures.CreateStudent(ctx, "Abe Early", "abe@example.com", manager.ID)

	req := testutil.WithChiURLParam(
		testutil.NewRequest("GET", "/students/"+student.ID.Hex()), "id", student.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeStudentDetail(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Get Student Detail success")
	rec.AssertContains(t, "Abe Early")
}

func TestServeStudentDetail_NotFound(t *testing.T) {
	h := newTestHandler(t)

	cases := map[string]string{
		"malformed id": "not-a-hex-id",
		"unknown id":   "64f0c2ab1234567890abcdef",
	}
	for name, id := range cases {
		t.Run(name, func(t *testing.T) {
			req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/students/"+id), "id", id)
			rec := testutil.NewRecorder()
			h.ServeStudentDetail(rec.ResponseRecorder, req)

			rec.AssertStatus(t, http.StatusNotFound)
			rec.AssertContains(t, "Student not found")
		})
	}
}

func TestHandleCreateStudent(t *testing.T) {
	h := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, h.DB)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")

	req := newMultipartRequest(t, "POST", "/students", map[string]string{
		"name":     "Abe Early",
		"email":    "abe@example.com",
		"password": "supersecret",
	})
	req = testutil.WithUser(req, testutil.TestUser{ID: manager.ID.Hex(), Role: models.RoleManager})
	rec := testutil.NewRecorder()
	h.HandleCreateStudent(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Create Student Success")

	var got models.User
	if err := h.DB.Collection("users").FindOne(ctx, bson.M{"email": "abe@example.com"}).Decode(&got); err != nil {
		t.Fatalf("loading created student: %v", err)
	}
	if got.Role != models.RoleStudent {
		t.Errorf("role = %q", got.Role)
	}
	if got.ManagerID == nil || *got.ManagerID != manager.ID {
		t.Errorf("manager = %v, want %v", got.ManagerID, manager.ID)
	}
	if got.Photo != models.DefaultPhoto {
		t.Errorf("photo = %q, want placeholder", got.Photo)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("supersecret")); err != nil {
		t.Error("stored hash does not match the password")
	}
}

func TestHandleCreateStudent_ValidationErrors(t *testing.T) {
	h := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, h.DB)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")

	req := newMultipartRequest(t, "POST", "/students", map[string]string{
		"name":     "Abe",
		"email":    "not-an-email",
		"password": "short",
	})
	req = testutil.WithUser(req, testutil.TestUser{ID: manager.ID.Hex(), Role: models.RoleManager})
	rec := testutil.NewRecorder()
	h.HandleCreateStudent(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	env := rec.DecodeEnvelope(t)
	if env.Message != "Validation error" {
		t.Errorf("message = %q", env.Message)
	}
	if len(env.Errors) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(env.Errors), env.Errors)
	}
}

func TestHandleUpdateStudent_KeepsPasswordWhenOmitted(t *testing.T) {
	h := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, h.DB)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")
	student := fixtures.CreateStudent(ctx, "Abe Early", "abe@example.com", manager.ID)

	req := newMultipartRequest(t, "PUT", "/students/"+student.ID.Hex(), map[string]string{
		"name":  "Abe Renamed",
		"email": "abe@example.com",
	})
	req = testutil.WithChiURLParam(req, "id", student.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdateStudent(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Update Student Success")

	var got models.User
	if err := h.DB.Collection("users").FindOne(ctx, bson.M{"_id": student.ID}).Decode(&got); err != nil {
		t.Fatalf("loading student: %v", err)
	}
	if got.Name != "Abe Renamed" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Password != student.Password {
		t.Error("stored hash changed although no password was sent")
	}
	if got.Photo != student.Photo {
		t.Error("photo changed although no avatar was sent")
	}
	if got.Role != models.RoleStudent {
		t.Errorf("role = %q, must stay student", got.Role)
	}
}

func TestHandleUpdateStudent_RehashesNewPassword(t *testing.T) {
	h := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, h.DB)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")
	student := fixtures.CreateStudent(ctx, "Abe Early", "abe@example.com", manager.ID)

	req := newMultipartRequest(t, "PUT", "/students/"+student.ID.Hex(), map[string]string{
		"name":     "Abe Early",
		"email":    "abe@example.com",
		"password": "newsecret123",
	})
	req = testutil.WithChiURLParam(req, "id", student.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdateStudent(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var got models.User
	if err := h.DB.Collection("users").FindOne(ctx, bson.M{"_id": student.ID}).Decode(&got); err != nil {
		t.Fatalf("loading student: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("newsecret123")); err != nil {
		t.Error("stored hash does not match the new password")
	}
}

func TestHandleUpdateStudent_NotFound(t *testing.T) {
	h := newTestHandler(t)

	req := newMultipartRequest(t, "PUT", "/students/64f0c2ab1234567890abcdef", map[string]string{
		"name":  "Abe Early",
		"email": "abe@example.com",
	})
	req = testutil.WithChiURLParam(req, "id", "64f0c2ab1234567890abcdef")
	rec := testutil.NewRecorder()
	h.HandleUpdateStudent(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Student not found")
}

func TestHandleDeleteStudent_PulledFromEveryRoster(t *testing.T) {
	h := newTestHandler(t)
	fixtures := testutil.NewFixtures(t, h.DB)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	manager := fixtures.CreateManager(ctx, "Jane Manager", "jane@example.com")
	cat := fixtures.CreateCategory(ctx, "Programming")
	first := fixtures.CreateCourse(ctx, "Go From Scratch", cat.ID, manager.ID)
	second := fixtures.CreateCourse(ctx, "Rust Basics", cat.ID, manager.ID)
	student := fixtures.CreateStudent(ctx, "Abe Early", "abe@example.com", manager.ID)
	fixtures.Enroll(ctx, first.ID, student.ID)
	fixtures.Enroll(ctx, second.ID, student.ID)

	req := testutil.WithChiURLParam(
		testutil.NewRequest("DELETE", "/students/"+student.ID.Hex()), "id", student.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDeleteStudent(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Delete student success")

	if n, _ := h.DB.Collection("users").CountDocuments(ctx, bson.M{"_id": student.ID}); n != 0 {
		t.Error("deleted student still exists")
	}

	// Every roster the student was on dropped the reference.
	for _, courseID := range []any{first.ID, second.ID} {
		var course models.Course
		if err := h.DB.Collection("courses").FindOne(ctx, bson.M{"_id": courseID}).Decode(&course); err != nil {
			t.Fatalf("loading course: %v", err)
		}
		if len(course.Students) != 0 {
			t.Errorf("course %v still lists the student: %v", courseID, course.Students)
		}
	}
}

func TestHandleDeleteStudent_NotFound(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.WithChiURLParam(
		testutil.NewRequest("DELETE", "/students/64f0c2ab1234567890abcdef"), "id", "64f0c2ab1234567890abcdef")
	rec := testutil.NewRecorder()
	h.HandleDeleteStudent(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Student not found")
}
