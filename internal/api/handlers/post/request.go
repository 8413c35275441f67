package post

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"Quill/internal/api/handlers"
	"Quill/internal/core/posts"
	"Quill/internal/core/thumbnails"
)

// postForm is a create or update body, from either JSON or multipart/form-data
type postForm struct {
	fields    posts.UpdatePostRequest
	thumbnail []byte
}

// readPostForm parses the request body. It writes the error reply itself and returns false on failure.
// Client-sent owner fields are never read.
func readPostForm(w http.ResponseWriter, r *http.Request) (*postForm, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		form := &postForm{}
		if !handlers.DecodeJSON(w, r, &form.fields) {
			return nil, false
		}
		return form, true
	}

	r.Body = http.MaxBytesReader(w, r.Body, handlers.MaxMultipartBodyBytes)
	if err := r.ParseMultipartForm(handlers.MaxMultipartBodyBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "Request body too large (max 8MB)")
			return nil, false
		}
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid multipart body")
		return nil, false
	}

	form := &postForm{}
	form.fields.Title = formValue(r, "title")
	form.fields.Content = formValue(r, "content")
	form.fields.Category = formValue(r, "category")

	if raw := formValue(r, "is_public"); raw != nil {
		isPublic, err := strconv.ParseBool(strings.TrimSpace(*raw))
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "is_public must be a boolean")
			return nil, false
		}
		form.fields.IsPublic = &isPublic
	}

	file, _, err := r.FormFile("thumbnail")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid thumbnail upload")
		return nil, false
	default:
		defer func() { _ = file.Close() }()
		// one byte past the limit so the store can report the upload as too large
		data, err := io.ReadAll(io.LimitReader(file, thumbnails.MaxUploadBytes+1))
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Failed to read thumbnail upload")
			return nil, false
		}
		form.thumbnail = data
	}

	return form, true
}

// formValue returns a pointer to a multipart field, or nil when the field was not sent
func formValue(r *http.Request, key string) *string {
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
