package handler

import (
	"net/http"

	"muzzatheory/internal/app/menu/entity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetCategories обрабатывает GET /categories
func (h *MenuHandler) GetCategories(c *gin.Context) {
	categories, err := h.menuService.GetAllCategories(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.CategoryListResponse{Categories: categories})
}

// GetCategory обрабатывает GET /categories/:id
func (h *MenuHandler) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid category ID"})
		return
	}

	category, err := h.menuService.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.CategoryResponse{Category: *category})
}

// CreateCategory обрабатывает POST /categories
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ValidationErrorResponse{Error: formatValidationErrors(err)})
		return
	}

	category, err := h.menuService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity.CreateCategoryResponse{NewCategoria: *category})
}

// UpdateCategory обрабатывает PATCH /categories/:id
func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid category ID"})
		return
	}

	var req entity.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ValidationErrorResponse{Error: formatValidationErrors(err)})
		return
	}

	category, err := h.menuService.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.UpdateCategoryResponse{UpdatedCategory: *category})
}

// DeleteCategory обрабатывает DELETE /categories/:id
func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid category ID"})
		return
	}

	deleted, err := h.menuService.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if !deleted {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Category could not be deleted"})
		return
	}

	c.JSON(http.StatusOK, entity.DeleteResponse{
		Message: "Category deleted successfully",
		Deleted: true,
	})
}
