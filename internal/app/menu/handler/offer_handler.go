package handler

import (
	"net/http"

	"muzzatheory/internal/app/menu/entity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetOffers обрабатывает GET /offers
func (h *MenuHandler) GetOffers(c *gin.Context) {
	offers, err := h.menuService.GetAllOffers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.OfferListResponse{Offers: offers})
}

// GetOffer обрабатывает GET /offers/:id
func (h *MenuHandler) GetOffer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid offer ID"})
		return
	}

	offer, err := h.menuService.GetOffer(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.OfferResponse{Offer: *offer})
}

// CreateOffer обрабатывает POST /offers
func (h *MenuHandler) CreateOffer(c *gin.Context) {
	var req entity.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ValidationErrorResponse{Error: formatValidationErrors(err)})
		return
	}

	offer, err := h.menuService.CreateOffer(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity.CreateOfferResponse{NewOffer: *offer})
}

// UpdateOffer обрабатывает PATCH /offers/:id
func (h *MenuHandler) UpdateOffer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid offer ID"})
		return
	}

	var req entity.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ValidationErrorResponse{Error: formatValidationErrors(err)})
		return
	}

	offer, err := h.menuService.UpdateOffer(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.UpdateOfferResponse{UpdatedOffer: *offer})
}

// DeleteOffer обрабатывает DELETE /offers/:id
func (h *MenuHandler) DeleteOffer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid offer ID"})
		return
	}

	deleted, err := h.menuService.DeleteOffer(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if !deleted {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Offer could not be deleted"})
		return
	}

	c.JSON(http.StatusOK, entity.DeleteResponse{
		Message: "Offer deleted successfully",
		Deleted: true,
	})
}
