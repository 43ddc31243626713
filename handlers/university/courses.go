package university

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/university-catalog/services"
	"github.com/sahilchouksey/university-catalog/utils/response"
	"github.com/sahilchouksey/university-catalog/utils/validation"
)

// AddCourse handles POST /api/v1/universities/:id/categories/:categoryId/courses
// (multipart). The optional course_pdf is uploaded before the course appears
// in the document.
func (h *CatalogHandler) AddCourse(c *fiber.Ctx) error {
	name := validation.SanitizeString(c.FormValue("course_name"))
	if len(name) < 2 {
		return response.BadRequest(c, "course_name must be at least 2 characters")
	}

	pdf, err := fileUpload(c, "course_pdf")
	if err != nil {
		return response.BadRequest(c, "Failed to read course_pdf")
	}

	university, err := h.service.AddCourse(c.Context(), c.Params("id"), c.Params("categoryId"), name, pdf)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, university)
}

// UpdateCourse handles PUT /api/v1/universities/:id/categories/:categoryId/courses/:courseId
func (h *CatalogHandler) UpdateCourse(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.BadRequest(c, "Expected multipart form data")
	}

	showPDF, ok := formBool(form.Value, "show_pdf")
	if !ok {
		return response.BadRequest(c, "show_pdf must be a boolean")
	}

	pdf, err := fileUpload(c, "course_pdf")
	if err != nil {
		return response.BadRequest(c, "Failed to read course_pdf")
	}

	input := services.UpdateCourseInput{
		Name:      formValue(form.Value, "course_name"),
		ShowPDF:   showPDF,
		PDF:       pdf,
		RemovePDF: formFlag(form.Value, "remove_pdf"),
	}

	university, err := h.service.UpdateCourse(c.Context(),
		c.Params("id"), c.Params("categoryId"), c.Params("courseId"), input)
	if err != nil {
		return respondError(c, err)
	}
	return response.SuccessWithMessage(c, "Course updated successfully", university)
}

// DeleteCourse handles DELETE /api/v1/universities/:id/categories/:categoryId/courses/:courseId
func (h *CatalogHandler) DeleteCourse(c *fiber.Ctx) error {
	university, err := h.service.DeleteCourse(c.Context(),
		c.Params("id"), c.Params("categoryId"), c.Params("courseId"))
	if err != nil {
		return respondError(c, err)
	}
	return response.SuccessWithMessage(c, "Course deleted successfully", university)
}
