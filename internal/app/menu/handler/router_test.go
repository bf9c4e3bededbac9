package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"muzzatheory/internal/app/menu/config"
	"muzzatheory/internal/app/menu/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_InfoEndpoint(t *testing.T) {
	// Arrange
	handler, _ := setupTestHandler()
	router := SetupRoutes(handler, &config.Config{Environment: "test"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.InfoResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "Muzza Theory", response.Message)
	assert.Equal(t, "running", response.Status)
	assert.Equal(t, "test", response.Environment)
}

func TestRouter_HealthEndpoint(t *testing.T) {
	// Arrange
	handler, _ := setupTestHandler()
	router := SetupRoutes(handler, &config.Config{Environment: "test"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRouter_UnknownRoute(t *testing.T) {
	// Arrange
	handler, _ := setupTestHandler()
	router := SetupRoutes(handler, &config.Config{Environment: "test"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/unknown", nil)

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
}
