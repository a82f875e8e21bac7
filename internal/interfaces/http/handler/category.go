package handler

import (
	"github.com/gin-gonic/gin"

	propertyapp "github.com/hostelops/backend/internal/application/property"
)

// CategoryHandler handles expense category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *propertyapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *propertyapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create adds an expense category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req propertyapp.CreateCategoryRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// Update renames an expense category
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req propertyapp.CreateCategoryRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// List returns all expense categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}
