package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"bookline-backend/models"
	"bookline-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupServiceRouter(store storage.Storage) *gin.Engine {
	r := gin.New()
	sc := NewServiceController(store)
	r.GET("/api/services", sc.List)
	r.GET("/api/services/:id", sc.Get)
	r.POST("/api/services", sc.Create)
	r.PATCH("/api/services/:id", sc.Update)
	r.PATCH("/api/services/:id/position", sc.UpdatePosition)
	r.POST("/api/services/order", sc.Reorder)
	r.DELETE("/api/services/:id", sc.Delete)
	return r
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateService(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	r := setupServiceRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/services", gin.H{
		"name":     "Gel Manicure",
		"duration": 45,
		"price":    5500,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var service models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &service))
	assert.Equal(t, int64(1), service.ID)
	assert.Equal(t, 0, service.Position)
	assert.True(t, service.Active)
}

func TestCreateServiceRejectsMissingFields(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	r := setupServiceRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/services", gin.H{"name": "No Duration"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListServicesActiveFilter(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	store.CreateService(&models.Service{Name: "Visible", Duration: 30, Price: 3000, Active: true, Position: models.PositionAuto})
	store.CreateService(&models.Service{Name: "Hidden", Duration: 30, Price: 3000, Active: false, Position: models.PositionAuto})
	r := setupServiceRouter(store)

	w := performJSON(t, r, http.MethodGet, "/api/services?active=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var services []models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &services))
	require.Len(t, services, 1)
	assert.Equal(t, "Visible", services[0].Name)
}

func TestGetServiceNotFound(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	r := setupServiceRouter(store)

	w := performJSON(t, r, http.MethodGet, "/api/services/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(t, r, http.MethodGet, "/api/services/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateServicePosition(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	created, _ := store.CreateService(&models.Service{Name: "S", Duration: 30, Price: 3000, Active: true, Position: models.PositionAuto})
	r := setupServiceRouter(store)

	w := performJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/services/%d/position", created.ID), gin.H{"position": 5})
	require.Equal(t, http.StatusOK, w.Code)

	var service models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &service))
	assert.Equal(t, 5, service.Position)

	// Position zero is a valid value, not a missing one.
	w = performJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/services/%d/position", created.ID), gin.H{"position": 0})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReorderServices(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	a, _ := store.CreateService(&models.Service{Name: "A", Duration: 30, Price: 3000, Active: true, Position: models.PositionAuto})
	b, _ := store.CreateService(&models.Service{Name: "B", Duration: 30, Price: 3000, Active: true, Position: models.PositionAuto})
	r := setupServiceRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/services/order", gin.H{"serviceIds": []int64{b.ID, a.ID}})
	require.Equal(t, http.StatusOK, w.Code)

	services, _ := store.GetServices()
	assert.Equal(t, "B", services[0].Name)
	assert.Equal(t, "A", services[1].Name)
}

func TestDeleteService(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	created, _ := store.CreateService(&models.Service{Name: "S", Duration: 30, Price: 3000, Active: true, Position: models.PositionAuto})
	r := setupServiceRouter(store)

	w := performJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/services/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/services/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
