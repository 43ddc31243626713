package university

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/university-catalog/services"
	"github.com/sahilchouksey/university-catalog/utils/response"
	"github.com/sahilchouksey/university-catalog/utils/validation"
)

// AddCategoryRequest represents the request body for adding a category
type AddCategoryRequest struct {
	Name string `json:"category_name" form:"category_name" validate:"required,min=2,max=255"`
}

// AddCategory handles POST /api/v1/universities/:id/categories
func (h *CatalogHandler) AddCategory(c *fiber.Ctx) error {
	var req AddCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Name = validation.SanitizeString(req.Name)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	university, err := h.service.AddCategory(c.Context(), c.Params("id"), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, university)
}

// UpdateCategory handles PUT /api/v1/universities/:id/categories/:categoryId
// (multipart). Only existing categories are mutated here; unknown ids are
// not created.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.BadRequest(c, "Expected multipart form data")
	}

	showPDF, ok := formBool(form.Value, "show_pdf")
	if !ok {
		return response.BadRequest(c, "show_pdf must be a boolean")
	}

	pdf, err := fileUpload(c, "category_pdf")
	if err != nil {
		return response.BadRequest(c, "Failed to read category_pdf")
	}

	input := services.UpdateCategoryInput{
		Name:      formValue(form.Value, "category_name"),
		ShowPDF:   showPDF,
		PDF:       pdf,
		RemovePDF: formFlag(form.Value, "remove_pdf"),
	}

	university, err := h.service.UpdateCategory(c.Context(), c.Params("id"), c.Params("categoryId"), input)
	if err != nil {
		return respondError(c, err)
	}
	return response.SuccessWithMessage(c, "Category updated successfully", university)
}

// DeleteCategory handles DELETE /api/v1/universities/:id/categories/:categoryId
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	university, err := h.service.DeleteCategory(c.Context(), c.Params("id"), c.Params("categoryId"))
	if err != nil {
		return respondError(c, err)
	}
	return response.SuccessWithMessage(c, "Category deleted successfully", university)
}
