package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category представляет категорию меню
type Category struct {
	CategoryID          uuid.UUID `json:"categoryId"`
	CategoryName        string    `json:"categoryName"`
	CategoryDescription string    `json:"categoryDescription"`
	CategoryImage       string    `json:"categoryImage,omitempty"`
}

// Product представляет блюдо/товар меню
// ProductImages хранится в БД сериализованным списком (TEXT),
// но наружу всегда отдается структурированным массивом URL
type Product struct {
	ProductID          uuid.UUID `json:"productId"`
	ProductName        string    `json:"productName"`
	ProductDescription string    `json:"productDescription"`
	ProductPrice       float64   `json:"productPrice"`
	ProductImages      []string  `json:"productImages"`
	CategoryID         uuid.UUID `json:"categoryId"`
}

// Offer представляет временную скидку на товар
// Инвариант: не более одной оферты на товар в любой момент времени
type Offer struct {
	OfferID         uuid.UUID `json:"offerId"`
	ProductID       uuid.UUID `json:"productId"`
	OfferDiscount   float64   `json:"offerDiscount"`
	OfferFinishDate string    `json:"offerFinishDate"`
}

// OfferWithProduct содержит оферту со снапшотом товара
// Оферты никогда не отдаются без вложенного товара
type OfferWithProduct struct {
	Offer
	Product Product `json:"product"`
}

// MenuEvent представляет событие изменения меню для Kafka
type MenuEvent struct {
	EventType string    `json:"event_type"` // PRODUCT_UPDATED, OFFER_CREATED, OFFER_UPDATED, OFFER_DELETED
	EntityID  uuid.UUID `json:"entity_id"`
	ProductID uuid.UUID `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}
