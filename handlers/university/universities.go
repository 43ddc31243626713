package university

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/university-catalog/services"
	"github.com/sahilchouksey/university-catalog/utils/response"
	"github.com/sahilchouksey/university-catalog/utils/validation"
)

// CreateUniversityRequest represents the multipart form for creating a
// university. Category/course seeds arrive as a JSON-encoded "categories"
// field; files arrive as "university_image" and "university_pdf" parts.
type CreateUniversityRequest struct {
	Name            string `json:"university_name" validate:"required,min=2,max=255"`
	EstablishedYear string `json:"established_year" validate:"required,numeric"`
	ApprovedBy      string `json:"approved_by" validate:"required,max=255"`
	Type            string `json:"type" validate:"required,max=100"`
	NAACGrade       string `json:"NAAC_grade" validate:"omitempty,max=50"`
	RankedBy        string `json:"ranked_by" validate:"omitempty,max=255"`
}

// ListUniversities handles GET /api/v1/universities
func (h *CatalogHandler) ListUniversities(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil {
		return response.BadRequest(c, "page must be an integer")
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return response.BadRequest(c, "limit must be an integer")
	}
	search := c.Query("search", "")

	result, err := h.service.ListUniversities(c.Context(), services.ListParams{
		Page:   page,
		Limit:  limit,
		Search: search,
	})
	if err != nil {
		return respondError(c, err)
	}

	return response.Paginated(c, result.Items, response.PaginationMeta{
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
		Pages: result.Pages,
	})
}

// GetUniversity handles GET /api/v1/universities/:id
func (h *CatalogHandler) GetUniversity(c *fiber.Ctx) error {
	university, err := h.service.GetUniversity(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, university)
}

// CreateUniversity handles POST /api/v1/universities (multipart)
func (h *CatalogHandler) CreateUniversity(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.BadRequest(c, "Expected multipart form data")
	}

	req := CreateUniversityRequest{
		Name:            validation.SanitizeString(c.FormValue("university_name")),
		EstablishedYear: validation.SanitizeString(c.FormValue("established_year")),
		ApprovedBy:      validation.SanitizeString(c.FormValue("approved_by")),
		Type:            validation.SanitizeString(c.FormValue("type")),
		NAACGrade:       validation.SanitizeString(c.FormValue("NAAC_grade")),
		RankedBy:        validation.SanitizeString(c.FormValue("ranked_by")),
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	year, err := strconv.Atoi(req.EstablishedYear)
	if err != nil {
		return response.BadRequest(c, "established_year must be an integer")
	}

	var seeds []services.CategorySeed
	if raw := formValue(form.Value, "categories"); raw != nil && *raw != "" {
		if err := json.Unmarshal([]byte(*raw), &seeds); err != nil {
			return response.BadRequest(c, "categories must be valid JSON")
		}
	}

	image, err := fileUpload(c, "university_image")
	if err != nil {
		return response.BadRequest(c, "Failed to read university_image")
	}
	pdf, err := fileUpload(c, "university_pdf")
	if err != nil {
		return response.BadRequest(c, "Failed to read university_pdf")
	}

	university, err := h.service.CreateUniversity(c.Context(), services.CreateUniversityInput{
		Name:            req.Name,
		EstablishedYear: &year,
		ApprovedBy:      req.ApprovedBy,
		Type:            req.Type,
		NAACGrade:       optional(req.NAACGrade),
		RankedBy:        optional(req.RankedBy),
		Categories:      seeds,
		Image:           image,
		PDF:             pdf,
	})
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, university)
}

// UpdateUniversity handles PUT /api/v1/universities/:id (multipart). Fields
// absent from the form keep their stored values.
func (h *CatalogHandler) UpdateUniversity(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.BadRequest(c, "Expected multipart form data")
	}

	showPDF, ok := formBool(form.Value, "show_pdf")
	if !ok {
		return response.BadRequest(c, "show_pdf must be a boolean")
	}

	image, err := fileUpload(c, "university_image")
	if err != nil {
		return response.BadRequest(c, "Failed to read university_image")
	}
	pdf, err := fileUpload(c, "university_pdf")
	if err != nil {
		return response.BadRequest(c, "Failed to read university_pdf")
	}

	input := services.UpdateUniversityInput{
		Name:            formValue(form.Value, "university_name"),
		EstablishedYear: formValue(form.Value, "established_year"),
		ApprovedBy:      formValue(form.Value, "approved_by"),
		Type:            formValue(form.Value, "type"),
		NAACGrade:       formValue(form.Value, "NAAC_grade"),
		RankedBy:        formValue(form.Value, "ranked_by"),
		ShowPDF:         showPDF,
		Image:           image,
		PDF:             pdf,
		RemoveImage:     formFlag(form.Value, "remove_image"),
		RemovePDF:       formFlag(form.Value, "remove_pdf"),
	}

	university, err := h.service.UpdateUniversity(c.Context(), c.Params("id"), input)
	if err != nil {
		return respondError(c, err)
	}

	return response.SuccessWithMessage(c, "University updated successfully", university)
}

// DeleteUniversity handles DELETE /api/v1/universities/:id
func (h *CatalogHandler) DeleteUniversity(c *fiber.Ctx) error {
	if err := h.service.DeleteUniversity(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return response.SuccessWithMessage(c, "University deleted successfully", nil)
}

// SearchCatalog handles GET /api/v1/universities/search?query=
func (h *CatalogHandler) SearchCatalog(c *fiber.Ctx) error {
	results, err := h.service.Search(c.Context(), c.Query("query", ""))
	if err != nil {
		return respondError(c, err)
	}
	return response.SuccessWithCount(c, len(results), results)
}
