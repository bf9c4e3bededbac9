//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"muzzatheory/internal/app/menu/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// BaseURL - адрес запущенного menu-service
	// Для E2E тестов сервис должен быть запущен через docker-compose
	BaseURL = "http://localhost:3000"
)

func postJSON(t *testing.T, client *http.Client, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := client.Post(BaseURL+path, "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	return resp
}

func doJSON(t *testing.T, client *http.Client, method, path string, payload any) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if payload != nil {
		body, merr := json.Marshal(payload)
		require.NoError(t, merr)
		req, err = http.NewRequest(method, BaseURL+path, bytes.NewBuffer(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequest(method, BaseURL+path, nil)
		require.NoError(t, err)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

// TestFullMenuFlow тестирует полный цикл работы с меню:
// 1. Проверка информационного эндпоинта
// 2. Создание категории
// 3. Создание товара в категории
// 4. Попытка удаления занятой категории (конфликт)
// 5. Создание оферты на товар
// 6. Попытка второй оферты на тот же товар (конфликт)
// 7. Обновление цены товара (событие в Kafka)
// 8. Удаление товара, оферты и категории
func TestFullMenuFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	// ==================== Step 1: Service Info ====================
	t.Log("Step 1: Checking service info endpoint")

	resp, err := client.Get(BaseURL + "/")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var info entity.InfoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	resp.Body.Close()
	assert.Equal(t, "Muzza Theory", info.Message)
	assert.Equal(t, "running", info.Status)

	// ==================== Step 2: Create Category ====================
	t.Log("Step 2: Creating category")

	categoryName := fmt.Sprintf("Category %d", time.Now().UnixNano()%1000000)
	resp = postJSON(t, client, "/categories", entity.CreateCategoryRequest{
		CategoryName:        categoryName,
		CategoryDescription: "E2E test category for the menu flow",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var categoryResp entity.CreateCategoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&categoryResp))
	resp.Body.Close()
	require.NotEqual(t, uuid.Nil, categoryResp.NewCategoria.CategoryID)
	categoryID := categoryResp.NewCategoria.CategoryID
	t.Logf("Created category: %s (ID: %s)", categoryName, categoryID)

	// ==================== Step 3: Create Product ====================
	t.Log("Step 3: Creating product")

	price := 12.5
	resp = postJSON(t, client, "/products", entity.CreateProductRequest{
		ProductName:        "E2E Margherita",
		ProductDescription: "E2E test product for the menu flow",
		ProductPrice:       &price,
		ProductImages:      []string{"https://cdn.example.com/margherita.jpg"},
		CategoryID:         categoryID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var productResp entity.CreateProductResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&productResp))
	resp.Body.Close()
	productID := productResp.NewProduct.ProductID
	t.Logf("Created product: %s (ID: %s)", productResp.NewProduct.ProductName, productID)

	// ==================== Step 4: Delete Busy Category ====================
	t.Log("Step 4: Deleting category with products must fail")

	resp = doJSON(t, client, http.MethodDelete, "/categories/"+categoryID.String(), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var conflict entity.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&conflict))
	resp.Body.Close()
	assert.Equal(t, "REFERENCE_CONSTRAINT", conflict.Code)

	// ==================== Step 5: Create Offer ====================
	t.Log("Step 5: Creating offer")

	discount := 15.0
	finishDate := time.Now().Add(72 * time.Hour).Format(time.RFC3339)
	resp = postJSON(t, client, "/offers", entity.CreateOfferRequest{
		ProductID:       productID,
		OfferDiscount:   &discount,
		OfferFinishDate: finishDate,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var offerResp entity.CreateOfferResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&offerResp))
	resp.Body.Close()
	offerID := offerResp.NewOffer.OfferID
	assert.Equal(t, productID, offerResp.NewOffer.Product.ProductID)
	t.Logf("Created offer: %s", offerID)

	// ==================== Step 6: Duplicate Offer ====================
	t.Log("Step 6: Second offer for the same product must fail")

	resp = postJSON(t, client, "/offers", entity.CreateOfferRequest{
		ProductID:       productID,
		OfferDiscount:   &discount,
		OfferFinishDate: finishDate,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// ==================== Step 7: Update Product Price ====================
	t.Log("Step 7: Updating product price")

	newPrice := 14.0
	resp = doJSON(t, client, http.MethodPatch, "/products/"+productID.String(), entity.UpdateProductRequest{
		ProductPrice: &newPrice,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updatedProduct entity.UpdateProductResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updatedProduct))
	resp.Body.Close()
	assert.Equal(t, 14.0, updatedProduct.UpdatedProduct.ProductPrice)

	// ==================== Step 8: Cleanup ====================
	t.Log("Step 8: Deleting offer, product and category")

	resp = doJSON(t, client, http.MethodDelete, "/offers/"+offerID.String(), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, client, http.MethodDelete, "/products/"+productID.String(), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, client, http.MethodDelete, "/categories/"+categoryID.String(), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted entity.DeleteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&deleted))
	resp.Body.Close()
	assert.True(t, deleted.Deleted)
}
