package handler

import (
	"net/http"

	"muzzatheory/internal/app/menu/entity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetProducts обрабатывает GET /products
func (h *MenuHandler) GetProducts(c *gin.Context) {
	products, err := h.menuService.GetAllProducts(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{Products: products})
}

// GetProduct обрабатывает GET /products/:id
func (h *MenuHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid product ID"})
		return
	}

	product, err := h.menuService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.ProductResponse{Product: *product})
}

// CreateProduct обрабатывает POST /products
func (h *MenuHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ValidationErrorResponse{Error: formatValidationErrors(err)})
		return
	}

	product, err := h.menuService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity.CreateProductResponse{NewProduct: *product})
}

// UpdateProduct обрабатывает PATCH /products/:id
func (h *MenuHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid product ID"})
		return
	}

	var req entity.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ValidationErrorResponse{Error: formatValidationErrors(err)})
		return
	}

	product, err := h.menuService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.UpdateProductResponse{UpdatedProduct: *product})
}

// DeleteProduct обрабатывает DELETE /products/:id
func (h *MenuHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid product ID"})
		return
	}

	deleted, err := h.menuService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if !deleted {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Product could not be deleted"})
		return
	}

	c.JSON(http.StatusOK, entity.DeleteResponse{
		Message: "Product deleted successfully",
		Deleted: true,
	})
}
