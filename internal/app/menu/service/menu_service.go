package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"muzzatheory/internal/app/menu/entity"
	"muzzatheory/internal/app/menu/repository"
	"muzzatheory/internal/app/menu/util"
	"muzzatheory/pkg/logger"

	"github.com/google/uuid"
)

// Ошибки бизнес-логики для обработки в handlers.
// Возвращаются без обертывания, чтобы handler мог отдать сообщение дословно.
var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrOfferNotFound       = errors.New("offer not found")
	ErrDuplicateOffer      = errors.New("product already has an active offer")
	ErrCategoryHasProducts = errors.New("cannot delete category with associated products")
)

// Типы событий меню для Kafka
const (
	EventProductUpdated = "PRODUCT_UPDATED"
	EventOfferCreated   = "OFFER_CREATED"
	EventOfferUpdated   = "OFFER_UPDATED"
	EventOfferDeleted   = "OFFER_DELETED"
)

// MenuService обрабатывает бизнес-логику меню: категории, товары, оферты.
// Межсущностные проверки целостности (существование внешних ключей,
// уникальность оферты на товар) живут здесь, перед мутирующей записью.
type MenuService struct {
	categoryRepo  repository.CategoryRepository
	productRepo   repository.ProductRepository
	offerRepo     repository.OfferRepository
	kafkaProducer util.MessagePublisher
}

// NewMenuService создает новый сервис меню с внедрением зависимостей
func NewMenuService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	offerRepo repository.OfferRepository,
	kafkaProducer util.MessagePublisher,
) *MenuService {
	return &MenuService{
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
		offerRepo:     offerRepo,
		kafkaProducer: kafkaProducer,
	}
}

// === CATEGORIES ===

// CreateCategory создает новую категорию со свежим UUID
func (s *MenuService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		CategoryID:          uuid.New(),
		CategoryName:        req.CategoryName,
		CategoryDescription: req.CategoryDescription,
		CategoryImage:       req.CategoryImage,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// GetCategory получает категорию по ID
func (s *MenuService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// GetAllCategories получает все категории
func (s *MenuService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}

// UpdateCategory обновляет категорию частичным патчем
// Отсутствующее поле оставляет текущее значение (поле-за-полем, без спредов)
func (s *MenuService) UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if req.CategoryName != nil {
		category.CategoryName = *req.CategoryName
	}
	if req.CategoryDescription != nil {
		category.CategoryDescription = *req.CategoryDescription
	}
	if req.CategoryImage != nil {
		category.CategoryImage = *req.CategoryImage
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory удаляет категорию
// Категория с ссылающимися товарами не удаляется - возвращается конфликт
func (s *MenuService) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return false, ErrCategoryNotFound
		}
		return false, fmt.Errorf("failed to get category: %w", err)
	}

	deleted, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryHasProducts) {
			return false, ErrCategoryHasProducts
		}
		return false, fmt.Errorf("failed to delete category: %w", err)
	}

	return deleted, nil
}

// === PRODUCTS ===

// CreateProduct создает новый товар
// Категория должна существовать до записи
func (s *MenuService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	product := &entity.Product{
		ProductID:          uuid.New(),
		ProductName:        req.ProductName,
		ProductDescription: req.ProductDescription,
		ProductPrice:       *req.ProductPrice,
		ProductImages:      req.ProductImages,
		CategoryID:         req.CategoryID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// GetProduct получает товар по ID
func (s *MenuService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// GetAllProducts получает все товары
func (s *MenuService) GetAllProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

// UpdateProduct обновляет товар частичным патчем
// Новая категория проверяется на существование до записи.
// При смене цены отправляется событие PRODUCT_UPDATED в Kafka.
func (s *MenuService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	oldPrice := product.ProductPrice

	if req.ProductName != nil {
		product.ProductName = *req.ProductName
	}
	if req.ProductDescription != nil {
		product.ProductDescription = *req.ProductDescription
	}
	if req.ProductPrice != nil {
		product.ProductPrice = *req.ProductPrice
	}
	if req.ProductImages != nil {
		product.ProductImages = req.ProductImages
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
		product.CategoryID = *req.CategoryID
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if product.ProductPrice != oldPrice {
		s.publishMenuEvent(ctx, entity.MenuEvent{
			EventType: EventProductUpdated,
			EntityID:  product.ProductID,
			ProductID: product.ProductID,
			Timestamp: time.Now(),
		})
	}

	return product, nil
}

// DeleteProduct удаляет товар
// Оферты товара не проверяются: строка оферты уходит каскадом в хранилище
func (s *MenuService) DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return false, ErrProductNotFound
		}
		return false, fmt.Errorf("failed to get product: %w", err)
	}

	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	return deleted, nil
}

// === OFFERS ===

// CreateOffer создает новую оферту
// Порядок проверок: сначала существование товара, затем уникальность оферты
func (s *MenuService) CreateOffer(ctx context.Context, req *entity.CreateOfferRequest) (*entity.OfferWithProduct, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to verify product: %w", err)
	}

	if _, err := s.offerRepo.GetByProductID(ctx, req.ProductID, uuid.Nil); err == nil {
		return nil, ErrDuplicateOffer
	} else if !errors.Is(err, repository.ErrOfferNotFound) {
		return nil, fmt.Errorf("failed to check existing offer: %w", err)
	}

	offer := &entity.Offer{
		OfferID:         uuid.New(),
		ProductID:       req.ProductID,
		OfferDiscount:   *req.OfferDiscount,
		OfferFinishDate: req.OfferFinishDate,
	}

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateOffer):
			return nil, ErrDuplicateOffer
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	s.publishMenuEvent(ctx, entity.MenuEvent{
		EventType: EventOfferCreated,
		EntityID:  offer.OfferID,
		ProductID: offer.ProductID,
		Timestamp: time.Now(),
	})

	return &entity.OfferWithProduct{Offer: *offer, Product: *product}, nil
}

// GetOffer получает оферту с вложенным снапшотом товара
func (s *MenuService) GetOffer(ctx context.Context, id uuid.UUID) (*entity.OfferWithProduct, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	return offer, nil
}

// GetAllOffers получает все оферты с вложенными товарами
func (s *MenuService) GetAllOffers(ctx context.Context) ([]entity.OfferWithProduct, error) {
	offers, err := s.offerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get offers: %w", err)
	}

	return offers, nil
}

// UpdateOffer обновляет оферту частичным патчем
// При смене товара проверки как при создании, но дубликат ищется
// с исключением самой обновляемой оферты
func (s *MenuService) UpdateOffer(ctx context.Context, id uuid.UUID, req *entity.UpdateOfferRequest) (*entity.OfferWithProduct, error) {
	existing, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	if req.ProductID != nil && *req.ProductID != existing.ProductID {
		if _, err := s.productRepo.GetByID(ctx, *req.ProductID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, fmt.Errorf("failed to verify product: %w", err)
		}

		if _, err := s.offerRepo.GetByProductID(ctx, *req.ProductID, id); err == nil {
			return nil, ErrDuplicateOffer
		} else if !errors.Is(err, repository.ErrOfferNotFound) {
			return nil, fmt.Errorf("failed to check existing offer: %w", err)
		}
	}

	updated := entity.Offer{
		OfferID:         id,
		ProductID:       existing.ProductID,
		OfferDiscount:   existing.OfferDiscount,
		OfferFinishDate: existing.OfferFinishDate,
	}
	if req.ProductID != nil {
		updated.ProductID = *req.ProductID
	}
	if req.OfferDiscount != nil {
		updated.OfferDiscount = *req.OfferDiscount
	}
	if req.OfferFinishDate != nil {
		updated.OfferFinishDate = *req.OfferFinishDate
	}

	if err := s.offerRepo.Update(ctx, &updated); err != nil {
		switch {
		case errors.Is(err, repository.ErrOfferNotFound):
			return nil, ErrOfferNotFound
		case errors.Is(err, repository.ErrDuplicateOffer):
			return nil, ErrDuplicateOffer
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}

	// Перечитываем товар: снапшот в ответе должен соответствовать
	// итоговому productId оферты
	product, err := s.productRepo.GetByID(ctx, updated.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to get offer product: %w", err)
	}

	s.publishMenuEvent(ctx, entity.MenuEvent{
		EventType: EventOfferUpdated,
		EntityID:  updated.OfferID,
		ProductID: updated.ProductID,
		Timestamp: time.Now(),
	})

	return &entity.OfferWithProduct{Offer: updated, Product: *product}, nil
}

// DeleteOffer удаляет оферту
func (s *MenuService) DeleteOffer(ctx context.Context, id uuid.UUID) (bool, error) {
	existing, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return false, ErrOfferNotFound
		}
		return false, fmt.Errorf("failed to get offer: %w", err)
	}

	deleted, err := s.offerRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete offer: %w", err)
	}

	if deleted {
		s.publishMenuEvent(ctx, entity.MenuEvent{
			EventType: EventOfferDeleted,
			EntityID:  existing.OfferID,
			ProductID: existing.ProductID,
			Timestamp: time.Now(),
		})
	}

	return deleted, nil
}

// publishMenuEvent отправляет событие меню в Kafka
// Ошибки публикации логируются и не прерывают основную операцию
func (s *MenuService) publishMenuEvent(ctx context.Context, event entity.MenuEvent) {
	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Warn().Err(err).Str("event_type", event.EventType).Msg("failed to marshal menu event")
		return
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.EntityID.String(), eventData); err != nil {
		logger.Warn().Err(err).Str("event_type", event.EventType).Msg("failed to publish menu event")
	}
}
