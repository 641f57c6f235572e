package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/futofind/futofind/internal/client"
	"github.com/futofind/futofind/internal/imaging"
)

// maxFormBytes bounds a multipart page submission: one photo plus fields.
const maxFormBytes = imaging.MaxInputBytes + 1<<20

// errPhoto is a photo problem the user can fix; its message is shown as is.
type errPhoto struct{ msg string }

func (e *errPhoto) Error() string { return e.msg }

// parseMultipart reads a multipart page form within maxFormBytes.
func parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return &errPhoto{msg: "The photo is too large. Please choose one under 10 MB."}
	}
	return nil
}

// formPhoto prepares the optional photo posted under field. A missing file
// yields nil.
func formPhoto(r *http.Request, field string) (*client.Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", field, err)
	}
	defer file.Close()
	if header.Size == 0 {
		return nil, nil
	}

	photo, err := imaging.Prepare(header.Filename, file)
	switch {
	case errors.Is(err, imaging.ErrUnsupported):
		return nil, &errPhoto{msg: "Please upload a JPEG or PNG image."}
	case errors.Is(err, imaging.ErrTooLarge):
		return nil, &errPhoto{msg: "The photo is too large. Please choose one under 10 MB."}
	case err != nil:
		return nil, &errPhoto{msg: "The photo could not be read. Please try another image."}
	}
	return &client.Upload{Filename: photo.Filename, ContentType: photo.ContentType, Data: photo.Data}, nil
}

// photoMessage returns the user-facing text of a photo error, or fallback.
func photoMessage(err error, fallback string) string {
	var pe *errPhoto
	if errors.As(err, &pe) {
		return pe.msg
	}
	return fallback
}
