// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"bookline-backend/models"
	"bookline-backend/storage"
	"bookline-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateBookingInput struct {
	ServiceID   int64        `json:"serviceId" binding:"required"`
	ClientName  string       `json:"clientName" binding:"required"`
	ClientPhone string       `json:"clientPhone" binding:"required"`
	StartTime   time.Time    `json:"startTime" binding:"required"`
	ProviderID  *int64       `json:"providerId"`
	Extras      models.JSONB `json:"extras"`
	TotalPrice  int64        `json:"totalPrice" binding:"min=0"` // in cents, add-ons folded in by the client
}

type StatusInput struct {
	Status string `json:"status" binding:"required"`
}

type BookingController struct {
	store storage.Storage
}

func NewBookingController(store storage.Storage) *BookingController {
	return &BookingController{store: store}
}

func (bc *BookingController) List(c *gin.Context) {
	bookings, err := bc.store.GetBookings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (bc *BookingController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := bc.store.GetBooking(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve booking")
		return
	}
	if booking == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (bc *BookingController) ListByPhone(c *gin.Context) {
	bookings, err := bc.store.GetBookingsByPhone(c.Param("phone"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// Create persists a booking. End time and status are derived by the
// store; any status in the payload is ignored.
func (bc *BookingController) Create(c *gin.Context) {
	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidatePhone(input.ClientPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	booking, err := bc.store.CreateBooking(&models.Booking{
		ServiceID:   input.ServiceID,
		ClientName:  input.ClientName,
		ClientPhone: input.ClientPhone,
		StartTime:   input.StartTime,
		ProviderID:  input.ProviderID,
		Extras:      input.Extras,
		TotalPrice:  input.TotalPrice,
	})
	if err != nil {
		if errors.Is(err, storage.ErrServiceNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Referenced service not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (bc *BookingController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.ValidBookingStatus(input.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	booking, err := bc.store.UpdateBookingStatus(id, input.Status)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidStatus) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking status")
		return
	}
	if booking == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		return
	}
	c.JSON(http.StatusOK, booking)
}
