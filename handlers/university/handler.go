package university

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/university-catalog/services"
	"github.com/sahilchouksey/university-catalog/utils/response"
	"github.com/sahilchouksey/university-catalog/utils/validation"
)

// CatalogHandler handles university catalog requests. Authentication is the
// deployment's concern; handlers assume callers are already authorized.
type CatalogHandler struct {
	service   *services.CatalogService
	validator *validation.Validator
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// respondError maps typed service errors onto the response envelope.
func respondError(c *fiber.Ctx, err error) error {
	var (
		ve *services.ValidationError
		nf *services.NotFoundError
		ue *services.UploadError
		pe *services.PersistenceError
	)
	switch {
	case errors.As(err, &ve):
		return response.ValidationError(c, ve)
	case errors.As(err, &nf):
		return response.NotFound(c, nf.Error())
	case errors.As(err, &ue):
		return response.UploadError(c, ue)
	case errors.As(err, &pe):
		return response.InternalServerError(c, "Storage operation failed")
	default:
		return response.InternalServerError(c, err.Error())
	}
}

// fileUpload reads an optional multipart file field. A missing field means
// "not provided", never an error.
func fileUpload(c *fiber.Ctx, field string) (*services.FileUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readFileHeader(header)
}

func readFileHeader(header *multipart.FileHeader) (*services.FileUpload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if header.Filename == "" && len(content) == 0 {
		return nil, nil
	}
	return &services.FileUpload{Filename: header.Filename, Content: content}, nil
}

// formValue returns a pointer to the first value of a multipart field, or
// nil when the field is absent. Presence drives the partial-merge semantics.
func formValue(values map[string][]string, key string) *string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return &v[0]
	}
	return nil
}

// formBool parses an optional boolean field. The second return is false when
// the field is present but unparseable.
func formBool(values map[string][]string, key string) (*bool, bool) {
	raw := formValue(values, key)
	if raw == nil {
		return nil, true
	}
	parsed, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

// formFlag reports whether an optional boolean field is present and true.
func formFlag(values map[string][]string, key string) bool {
	parsed, ok := formBool(values, key)
	return ok && parsed != nil && *parsed
}

// optional converts an empty sanitized string to a nil pointer.
func optional(s string) *string {
	s = validation.SanitizeString(s)
	if s == "" {
		return nil
	}
	return &s
}
