package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"muzzatheory/internal/app/menu/entity"
	"muzzatheory/internal/app/menu/repository"
	"muzzatheory/internal/app/menu/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Хелперы для создания тестовых данных

func newTestCategory() *entity.Category {
	return &entity.Category{
		CategoryID:          uuid.New(),
		CategoryName:        "Pizzas",
		CategoryDescription: "Traditional Italian pizzas with thin crust",
		CategoryImage:       "https://cdn.example.com/pizzas.jpg",
	}
}

func newTestProduct(categoryID uuid.UUID) *entity.Product {
	return &entity.Product{
		ProductID:          uuid.New(),
		ProductName:        "Margherita",
		ProductDescription: "Tomato sauce, mozzarella and fresh basil",
		ProductPrice:       12.5,
		ProductImages:      []string{"https://cdn.example.com/margherita.jpg"},
		CategoryID:         categoryID,
	}
}

func newTestOffer(productID uuid.UUID) *entity.Offer {
	return &entity.Offer{
		OfferID:         uuid.New(),
		ProductID:       productID,
		OfferDiscount:   15,
		OfferFinishDate: time.Now().Add(72 * time.Hour).Format(time.RFC3339),
	}
}

type testMocks struct {
	categoryRepo *mocks.MockCategoryRepository
	productRepo  *mocks.MockProductRepository
	offerRepo    *mocks.MockOfferRepository
	producer     *mocks.MockMessagePublisher
}

func newTestService() (*MenuService, *testMocks) {
	m := &testMocks{
		categoryRepo: new(mocks.MockCategoryRepository),
		productRepo:  new(mocks.MockProductRepository),
		offerRepo:    new(mocks.MockOfferRepository),
		producer:     new(mocks.MockMessagePublisher),
	}
	return NewMenuService(m.categoryRepo, m.productRepo, m.offerRepo, m.producer), m
}

// ==================== Category Tests ====================

func TestMenuService_CreateCategory_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := newTestService()

	m.categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)

	req := &entity.CreateCategoryRequest{
		CategoryName:        "Pizzas",
		CategoryDescription: "Traditional Italian pizzas with thin crust",
	}

	// Act
	category, err := svc.CreateCategory(ctx, req)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, category)
	assert.Equal(t, "Pizzas", category.CategoryName)
	assert.NotEqual(t, uuid.Nil, category.CategoryID)

	m.categoryRepo.AssertExpectations(t)
}

func TestMenuService_CreateCategory_RepoError(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := newTestService()

	m.categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(errors.New("db error"))

	req := &entity.CreateCategoryRequest{
		CategoryName:        "Pizzas",
		CategoryDescription: "Traditional Italian pizzas with thin crust",
	}

	// Act
	category, err := svc.CreateCategory(ctx, req)

	// Assert
	require.Error(t, err)
	assert.Nil(t, category)

	m.categoryRepo.AssertExpectations(t)
}

func TestMenuService_GetCategory_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := newTestService()
	id := uuid.New()

	m.categoryRepo.On("GetByID", ctx, id).Return(nil, repository.ErrCategoryNotFound)

	// Act
	category, err := svc.GetCategory(ctx, id)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Nil(t, category)
}

func TestMenuService_UpdateCategory_EmptyPatchKeepsValues(t *testing.T) {
	// Пустой patch не должен менять ни одного поля категории
	ctx := context.Background()
	svc, m := newTestService()
	existing := newTestCategory()

	m.categoryRepo.On("GetByID", ctx, existing.CategoryID).Return(existing, nil)
	m.categoryRepo.On("Update", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)

	// Act
	updated, err := svc.UpdateCategory(ctx, existing.CategoryID, &entity.UpdateCategoryRequest{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, existing.CategoryName, updated.CategoryName)
	assert.Equal(t, existing.CategoryDescription, updated.CategoryDescription)
	assert.Equal(t, existing.CategoryImage, updated.CategoryImage)
}

func TestMenuService_UpdateCategory_PartialPatch(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := newTestService()
	existing := newTestCategory()
	newName := "Desserts"

	m.categoryRepo.On("GetByID", ctx, existing.CategoryID).Return(existing, nil)
	m.categoryRepo.On("Update", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)

	// Act
	updated, err := svc.UpdateCategory(ctx, existing.CategoryID, &entity.UpdateCategoryRequest{
		CategoryName: &newName,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Desserts", updated.CategoryName)
	assert.Equal(t, existing.CategoryDescription, updated.CategoryDescription)
}

func TestMenuService_DeleteCategory_WithProducts(t *testing.T) {
	// Категория с товарами не удаляется - возвращается конфликт
	ctx := context.Background()
	svc, m := newTestService()
	existing := newTestCategory()

	m.categoryRepo.On("GetByID", ctx, existing.CategoryID).Return(existing, nil)
	m.categoryRepo.On("Delete", ctx, existing.CategoryID).Return(false, repository.ErrCategoryHasProducts)

	// Act
	deleted, err := svc.DeleteCategory(ctx, existing.CategoryID)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCategoryHasProducts)
	assert.False(t, deleted)
}

func TestMenuService_DeleteCategory_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := newTestService()
	id := uuid.New()

	m.categoryRepo.On("GetByID", ctx, id).Return(nil, repository.ErrCategoryNotFound)

	// Act
	deleted, err := svc.DeleteCategory(ctx, id)

	// Assert
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.False(t, deleted)
	m.categoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// ==================== Product Tests ====================

func TestMenuService_CreateProduct_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := newTestService()
	category := newTestCategory()
	price := 12.5

	m.categoryRepo.On("GetByID", ctx, category.CategoryID).Return(category, nil)
	m.productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	req := &entity.CreateProductRequest{
		ProductName:        "Margherita",
		ProductDescription: "Tomato sauce, mozzarella and fresh basil",
		ProductPrice:       &price,
		ProductImages:      []string{"https://cdn.example.com/margherita.jpg"},
		CategoryID:         category.CategoryID,
	}

	// Act
	product, err := svc.CreateProduct(ctx, req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Margherita", product.ProductName)
	assert.Equal(t, 12.5, product.ProductPrice)
	assert.Equal(t, category.CategoryID, product.CategoryID)
	assert.NotEqual(t, uuid.Nil, product.ProductID)

	m.productRepo.AssertExpectations(t)
}

func TestMenuService_CreateProduct_CategoryNotFound(t *testing.T) {
	// Несуществующая категория блокирует создание товара до записи
	ctx := context.Background()
	svc, m := newTestService()
	categoryID := uuid.New()
	price := 12.5

	m.categoryRepo.On("GetByID", ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	req := &entity.CreateProductRequest{
		ProductName:        "Margherita",
		ProductDescription: "Tomato sauce, mozzarella and fresh basil",
		ProductPrice:       &price,
		ProductImages:      []string{"https://cdn.example.com/margherita.jpg"},
		CategoryID:         categoryID,
	}

	// Act
	product, err := svc.CreateProduct(ctx, req)

	// Assert
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Nil(t, product)
	m.productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMenuService_UpdateProduct_PriceChangePublishesEvent(t *testing.T) {
	// Смена цены порождает событие PRODUCT_UPDATED в Kafka
	ctx := context.Background()
	svc, m := newTestService()
	existing := newTestProduct(uuid.New())
	newPrice := 15.0

	m.productRepo.On("GetByID", ctx, existing.ProductID).Return(existing, nil)
	m.productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	m.producer.On("PublishMessage", ctx, existing.ProductID.String(), mock.Anything).Return(nil)

	// Act
	updated, err := svc.UpdateProduct(ctx, existing.ProductID, &entity.UpdateProductRequest{
		ProductPrice: &newPrice,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 15.0, updated.ProductPrice)
	m.producer.AssertExpectations(t)
}

func TestMenuService_UpdateProduct_NoPriceChangeNoEvent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := newTestService()
	existing := newTestProduct(uuid.New())
	newName := "Margherita Grande"

	m.productRepo.On("GetByID", ctx, existing.ProductID).Return(existing, nil)
	m.productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	// Act
	_, err := svc.UpdateProduct(ctx, existing.ProductID, &entity.UpdateProductRequest{
		ProductName: &newName,
	})

	// Assert
	require.NoError(t, err)
	m.producer.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestMenuService_UpdateProduct_KafkaErrorIgnored(t *testing.T) {
	// Ошибка публикации в Kafka не должна ронять операцию обновления
	ctx := context.Background()
	svc, m := newTestService()
	existing := newTestProduct(uuid.New())
	newPrice := 9.99

	m.productRepo.On("GetByID", ctx, existing.ProductID).Return(existing, nil)
	m.productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	m.producer.On("PublishMessage", ctx, existing.ProductID.String(), mock.Anything).Return(errors.New("kafka unavailable"))

	// Act
	updated, err := svc.UpdateProduct(ctx, existing.ProductID, &entity.UpdateProductRequest{
		ProductPrice: &newPrice,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 9.99, updated.ProductPrice)
}

func TestMenuService_UpdateProduct_NewCategoryNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := newTestService()
	existing := newTestProduct(uuid.New())
	badCategoryID := uuid.New()

	m.productRepo.On("GetByID", ctx, existing.ProductID).Return(existing, nil)
	m.categoryRepo.On("GetByID", ctx, badCategoryID).Return(nil, repository.ErrCategoryNotFound)

	// Act
	updated, err := svc.UpdateProduct(ctx, existing.ProductID, &entity.UpdateProductRequest{
		CategoryID: &badCategoryID,
	})

	// Assert
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Nil(t, updated)
	m.productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMenuService_DeleteProduct_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := newTestService()
	existing := newTestProduct(uuid.New())

	m.productRepo.On("GetByID", ctx, existing.ProductID).Return(existing, nil)
	m.productRepo.On("Delete", ctx, existing.ProductID).Return(true, nil)

	// Act
	deleted, err := svc.DeleteProduct(ctx, existing.ProductID)

	// Assert
	require.NoError(t, err)
	assert.True(t, deleted)
}

// ==================== Offer Tests ====================

func TestMenuService_CreateOffer_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := newTestService()
	product := newTestProduct(uuid.New())
	discount := 15.0
	finishDate := time.Now().Add(72 * time.Hour).Format(time.RFC3339)

	m.productRepo.On("GetByID", ctx, product.ProductID).Return(product, nil)
	m.offerRepo.On("GetByProductID", ctx, product.ProductID, uuid.Nil).Return(nil, repository.ErrOfferNotFound)
	m.offerRepo.On("Create", ctx, mock.AnythingOfType("*entity.Offer")).Return(nil)
	m.producer.On("PublishMessage", ctx, mock.AnythingOfType("string"), mock.Anything).Return(nil)

	req := &entity.CreateOfferRequest{
		ProductID:       product.ProductID,
		OfferDiscount:   &discount,
		OfferFinishDate: finishDate,
	}

	// Act
	offer, err := svc.CreateOffer(ctx, req)

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, offer.OfferID)
	assert.Equal(t, 15.0, offer.OfferDiscount)
	assert.Equal(t, product.ProductID, offer.Product.ProductID)
	assert.Equal(t, product.ProductName, offer.Product.ProductName)

	m.offerRepo.AssertExpectations(t)
	m.producer.AssertExpectations(t)
}

func TestMenuService_CreateOffer_ProductNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := newTestService()
	productID := uuid.New()
	discount := 15.0

	m.productRepo.On("GetByID", ctx, productID).Return(nil, repository.ErrProductNotFound)

	req := &entity.CreateOfferRequest{
		ProductID:       productID,
		OfferDiscount:   &discount,
		OfferFinishDate: time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	}

	// Act
	offer, err := svc.CreateOffer(ctx, req)

	// Assert
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, offer)
	m.offerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMenuService_CreateOffer_Duplicate(t *testing.T) {
	// У товара уже есть оферта - вторая не создается
	ctx := context.Background()
	svc, m := newTestService()
	product := newTestProduct(uuid.New())
	existing := newTestOffer(product.ProductID)
	discount := 20.0

	m.productRepo.On("GetByID", ctx, product.ProductID).Return(product, nil)
	m.offerRepo.On("GetByProductID", ctx, product.ProductID, uuid.Nil).Return(existing, nil)

	req := &entity.CreateOfferRequest{
		ProductID:       product.ProductID,
		OfferDiscount:   &discount,
		OfferFinishDate: time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	}

	// Act
	offer, err := svc.CreateOffer(ctx, req)

	// Assert
	assert.ErrorIs(t, err, ErrDuplicateOffer)
	assert.Nil(t, offer)
	m.offerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMenuService_UpdateOffer_ProductChangeDuplicate(t *testing.T) {
	// Перенос оферты на товар с уже существующей офертой запрещен
	ctx := context.Background()
	svc, m := newTestService()
	product := newTestProduct(uuid.New())
	offer := newTestOffer(uuid.New())
	existing := &entity.OfferWithProduct{Offer: *offer, Product: *newTestProduct(uuid.New())}
	otherOffer := newTestOffer(product.ProductID)

	m.offerRepo.On("GetByID", ctx, offer.OfferID).Return(existing, nil)
	m.productRepo.On("GetByID", ctx, product.ProductID).Return(product, nil)
	m.offerRepo.On("GetByProductID", ctx, product.ProductID, offer.OfferID).Return(otherOffer, nil)

	// Act
	updated, err := svc.UpdateOffer(ctx, offer.OfferID, &entity.UpdateOfferRequest{
		ProductID: &product.ProductID,
	})

	// Assert
	assert.ErrorIs(t, err, ErrDuplicateOffer)
	assert.Nil(t, updated)
	m.offerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMenuService_UpdateOffer_PartialPatch(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := newTestService()
	product := newTestProduct(uuid.New())
	offer := newTestOffer(product.ProductID)
	existing := &entity.OfferWithProduct{Offer: *offer, Product: *product}
	newDiscount := 30.0

	m.offerRepo.On("GetByID", ctx, offer.OfferID).Return(existing, nil)
	m.offerRepo.On("Update", ctx, mock.AnythingOfType("*entity.Offer")).Return(nil)
	m.productRepo.On("GetByID", ctx, product.ProductID).Return(product, nil)
	m.producer.On("PublishMessage", ctx, offer.OfferID.String(), mock.Anything).Return(nil)

	// Act
	updated, err := svc.UpdateOffer(ctx, offer.OfferID, &entity.UpdateOfferRequest{
		OfferDiscount: &newDiscount,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.OfferDiscount)
	assert.Equal(t, offer.ProductID, updated.ProductID)
	assert.Equal(t, offer.OfferFinishDate, updated.OfferFinishDate)
	assert.Equal(t, product.ProductName, updated.Product.ProductName)
}

func TestMenuService_DeleteOffer_PublishesEvent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := newTestService()
	product := newTestProduct(uuid.New())
	offer := newTestOffer(product.ProductID)
	existing := &entity.OfferWithProduct{Offer: *offer, Product: *product}

	m.offerRepo.On("GetByID", ctx, offer.OfferID).Return(existing, nil)
	m.offerRepo.On("Delete", ctx, offer.OfferID).Return(true, nil)
	m.producer.On("PublishMessage", ctx, offer.OfferID.String(), mock.Anything).Return(nil)

	// Act
	deleted, err := svc.DeleteOffer(ctx, offer.OfferID)

	// Assert
	require.NoError(t, err)
	assert.True(t, deleted)
	m.producer.AssertExpectations(t)
}

func TestMenuService_DeleteOffer_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := newTestService()
	id := uuid.New()

	m.offerRepo.On("GetByID", ctx, id).Return(nil, repository.ErrOfferNotFound)

	// Act
	deleted, err := svc.DeleteOffer(ctx, id)

	// Assert
	assert.ErrorIs(t, err, ErrOfferNotFound)
	assert.False(t, deleted)
	m.offerRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
