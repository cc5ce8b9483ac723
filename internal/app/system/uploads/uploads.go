// Package uploads stores user-submitted images (course thumbnails, student
// avatars) through the storage provider and maps stored names to public URLs.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"

	"github.com/bintangnugrahaa/course-lms/internal/domain/models"
)

// DirCourses and DirStudents are the storage prefixes for each image kind.
const (
	DirCourses  = "courses"
	DirStudents = "students"
)

// ErrNotImage is returned when an uploaded file is not an image.
var ErrNotImage = errors.New("uploaded file is not an image")

// Uploader writes uploaded files to storage and builds their public URLs.
type Uploader struct {
	store   storage.Store
	baseURL string // e.g. http://localhost:8080/uploads
}

// New builds an Uploader. baseURL is the absolute URL prefix under which
// stored files are served.
func New(store storage.Store, baseURL string) *Uploader {
	return &Uploader{store: store, baseURL: strings.TrimRight(baseURL, "/")}
}

// Save stores the uploaded file under dir with a collision-proof name and
// returns the stored filename.
func (u *Uploader) Save(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("opening uploaded file: %w", err)
	}
	defer file.Close()

	name := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(fh.Filename))
	opts := &storage.PutOptions{ContentType: contentType}
	if err := u.store.Put(ctx, path.Join(dir, name), file, opts); err != nil {
		return "", fmt.Errorf("storing uploaded file: %w", err)
	}
	return name, nil
}

// Delete removes a previously stored file. Empty names and the placeholder
// image are left alone.
func (u *Uploader) Delete(ctx context.Context, dir, name string) error {
	if name == "" || name == models.DefaultPhoto {
		return nil
	}
	return u.store.Delete(ctx, path.Join(dir, name))
}

// PublicURL returns the URL a client can fetch the stored file from.
// The placeholder image lives at the root of the upload tree.
func (u *Uploader) PublicURL(dir, name string) string {
	if name == "" || name == models.DefaultPhoto {
		return u.baseURL + "/" + models.DefaultPhoto
	}
	return u.baseURL + "/" + dir + "/" + name
}

// sanitizeFilename removes or replaces characters that could be problematic
// in filenames.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		// Truncate but preserve extension if present
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}

	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
