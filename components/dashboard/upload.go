package dashboard

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path"
	"strings"
)

// ExtractUploadFilename returns the client filename of the guidelines part in
// a multipart body. Only part headers are read; file content is skipped.
func ExtractUploadFilename(body io.Reader, contentType string) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidUpload, err)
	}
	if !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		return "", fmt.Errorf("%w: expected multipart body, got %s", ErrInvalidUpload, mediaType)
	}
	reader := multipart.NewReader(body, params["boundary"])
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: missing %s field", ErrInvalidUpload, ParamGuidelines)
		}
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidUpload, err)
		}
		name, filename := part.FormName(), part.FileName()
		part.Close()
		if name == ParamGuidelines {
			return filename, nil
		}
	}
}

// CleanUploadFilename strips client directories and validates the extension
// against the accepted list.
func CleanUploadFilename(filename string, accepted []string) (string, error) {
	name := strings.TrimSpace(filename)
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("%w: filename is required", ErrInvalidUpload)
	}
	ext := strings.ToLower(path.Ext(name))
	for _, allowed := range accepted {
		if strings.EqualFold(ext, allowed) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %s files are not accepted (allowed: %s)", ErrInvalidUpload, ext, strings.Join(accepted, ", "))
}

// UploadRedirect is the view state shown after a successful upload.
func UploadRedirect(filename string) ViewState {
	return ViewState{Persona: PersonaComplianceAnalyst, Guidelines: filename}
}
