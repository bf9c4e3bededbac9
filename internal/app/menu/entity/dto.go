package entity

import "github.com/google/uuid"

type CreateCategoryRequest struct {
	CategoryName        string `json:"categoryName" validate:"required,min=2,max=40"`
	CategoryDescription string `json:"categoryDescription" validate:"required,min=10,max=255"`
	CategoryImage       string `json:"categoryImage" validate:"omitempty,url"`
}

// UpdateCategoryRequest частичное обновление: nil-поле означает "оставить как есть"
type UpdateCategoryRequest struct {
	CategoryName        *string `json:"categoryName" validate:"omitempty,min=2,max=40"`
	CategoryDescription *string `json:"categoryDescription" validate:"omitempty,min=10,max=255"`
	CategoryImage       *string `json:"categoryImage" validate:"omitempty,url"`
}

type CreateProductRequest struct {
	ProductName        string    `json:"productName" validate:"required,min=3,max=100"`
	ProductDescription string    `json:"productDescription" validate:"required,min=10,max=500"`
	ProductPrice       *float64  `json:"productPrice" validate:"required,min=0"`
	ProductImages      []string  `json:"productImages" validate:"required,min=1,max=10,dive,url"`
	CategoryID         uuid.UUID `json:"categoryId" validate:"required"`
}

type UpdateProductRequest struct {
	ProductName        *string    `json:"productName" validate:"omitempty,min=3,max=100"`
	ProductDescription *string    `json:"productDescription" validate:"omitempty,min=10,max=500"`
	ProductPrice       *float64   `json:"productPrice" validate:"omitempty,min=0"`
	ProductImages      []string   `json:"productImages" validate:"omitempty,min=1,max=10,dive,url"`
	CategoryID         *uuid.UUID `json:"categoryId" validate:"omitempty"`
}

type CreateOfferRequest struct {
	ProductID       uuid.UUID `json:"productId" validate:"required"`
	OfferDiscount   *float64  `json:"offerDiscount" validate:"required,min=0,max=100"`
	OfferFinishDate string    `json:"offerFinishDate" validate:"required,futuredate"`
}

type UpdateOfferRequest struct {
	ProductID       *uuid.UUID `json:"productId" validate:"omitempty"`
	OfferDiscount   *float64   `json:"offerDiscount" validate:"omitempty,min=0,max=100"`
	OfferFinishDate *string    `json:"offerFinishDate" validate:"omitempty,futuredate"`
}

// Конверты ответов повторяют именование исходного API дословно,
// включая newCategoria
type CategoryListResponse struct {
	Categories []Category `json:"categories"`
}

type CategoryResponse struct {
	Category Category `json:"category"`
}

type CreateCategoryResponse struct {
	NewCategoria Category `json:"newCategoria"`
}

type UpdateCategoryResponse struct {
	UpdatedCategory Category `json:"updatedCategory"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
}

type ProductResponse struct {
	Product Product `json:"product"`
}

type CreateProductResponse struct {
	NewProduct Product `json:"newProduct"`
}

type UpdateProductResponse struct {
	UpdatedProduct Product `json:"updatedProduct"`
}

type OfferListResponse struct {
	Offers []OfferWithProduct `json:"offers"`
}

type OfferResponse struct {
	Offer OfferWithProduct `json:"offer"`
}

type CreateOfferResponse struct {
	NewOffer OfferWithProduct `json:"newOffer"`
}

type UpdateOfferResponse struct {
	UpdatedOffer OfferWithProduct `json:"updatedOffer"`
}

type DeleteResponse struct {
	Message string `json:"message"`
	Deleted bool   `json:"deleted"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ValidationErrorResponse 400-ответ с ошибками по полям
type ValidationErrorResponse struct {
	Error map[string]string `json:"error"`
}

type InfoResponse struct {
	Message     string `json:"message"`
	Status      string `json:"status"`
	Environment string `json:"environment"`
}
