package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"bookline-backend/models"
	"bookline-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBookingRouter(store storage.Storage) *gin.Engine {
	r := gin.New()
	bc := NewBookingController(store)
	r.GET("/api/bookings", bc.List)
	r.GET("/api/bookings/:id", bc.Get)
	r.GET("/api/bookings/phone/:phone", bc.ListByPhone)
	r.POST("/api/bookings", bc.Create)
	r.PATCH("/api/bookings/:id/status", bc.UpdateStatus)
	return r
}

func TestCreateBooking(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	service, _ := store.CreateService(&models.Service{Name: "Spa Pedicure", Duration: 60, Price: 7000, Active: true, Position: models.PositionAuto})
	r := setupBookingRouter(store)

	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	w := performJSON(t, r, http.MethodPost, "/api/bookings", gin.H{
		"serviceId":   service.ID,
		"clientName":  "Jamie",
		"clientPhone": "+15551234567",
		"startTime":   start.Format(time.RFC3339),
		"totalPrice":  7000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.True(t, booking.EndTime.Equal(start.Add(60*time.Minute)))
}

func TestCreateBookingUnknownService(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	r := setupBookingRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/bookings", gin.H{
		"serviceId":   99,
		"clientName":  "Jamie",
		"clientPhone": "+15551234567",
		"startTime":   time.Now().UTC().Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bookings, _ := store.GetBookings()
	assert.Empty(t, bookings)
}

func TestCreateBookingRejectsBadPhone(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	service, _ := store.CreateService(&models.Service{Name: "S", Duration: 30, Price: 3000, Active: true, Position: models.PositionAuto})
	r := setupBookingRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/bookings", gin.H{
		"serviceId":   service.ID,
		"clientName":  "Jamie",
		"clientPhone": "not-a-number",
		"startTime":   time.Now().UTC().Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBookingStatusEndpoint(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	service, _ := store.CreateService(&models.Service{Name: "S", Duration: 30, Price: 3000, Active: true, Position: models.PositionAuto})
	booking, _ := store.CreateBooking(&models.Booking{ServiceID: service.ID, ClientName: "Jamie", ClientPhone: "+15551234567", StartTime: time.Now()})
	r := setupBookingRouter(store)

	w := performJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/bookings/%d/status", booking.ID), gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.BookingStatusConfirmed, updated.Status)

	w = performJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/bookings/%d/status", booking.ID), gin.H{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(t, r, http.MethodPatch, "/api/bookings/99/status", gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBookingsByPhone(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	service, _ := store.CreateService(&models.Service{Name: "S", Duration: 30, Price: 3000, Active: true, Position: models.PositionAuto})
	store.CreateBooking(&models.Booking{ServiceID: service.ID, ClientName: "Jamie", ClientPhone: "+15551234567", StartTime: time.Now()})
	store.CreateBooking(&models.Booking{ServiceID: service.ID, ClientName: "Alex", ClientPhone: "+15559876543", StartTime: time.Now()})
	r := setupBookingRouter(store)

	w := performJSON(t, r, http.MethodGet, "/api/bookings/phone/+15551234567", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var bookings []models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, "Jamie", bookings[0].ClientName)
}
