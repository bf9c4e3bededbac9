package repository

import (
	"context"
	"errors"

	"muzzatheory/internal/app/menu/entity"

	"github.com/google/uuid"
)

// Стандартные ошибки репозиториев для обработки в service layer
var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrOfferNotFound       = errors.New("offer not found")
	ErrDuplicateOffer      = errors.New("product already has an active offer")
	ErrCategoryHasProducts = errors.New("cannot delete category with associated products")
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// Delete возвращает признак фактического удаления строки.
	// Удаление блокируется, пока на категорию ссылаются товары.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OfferWithProduct, error)
	GetAll(ctx context.Context) ([]entity.OfferWithProduct, error)
	// GetByProductID ищет оферту товара, исключая excludeOfferID
	// (uuid.Nil - без исключения). Нужна для проверки уникальности.
	GetByProductID(ctx context.Context, productID, excludeOfferID uuid.UUID) (*entity.Offer, error)
	Update(ctx context.Context, offer *entity.Offer) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
