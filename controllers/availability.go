// controllers/availability.go
package controllers

import (
	"net/http"
	"strconv"

	"bookline-backend/models"
	"bookline-backend/storage"
	"bookline-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateAvailabilityInput struct {
	ProviderID  int64  `json:"providerId" binding:"required"`
	DayOfWeek   *int   `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime   string `json:"startTime" binding:"required"` // HH:MM
	EndTime     string `json:"endTime" binding:"required"`   // HH:MM
	IsAvailable *bool  `json:"isAvailable"`
}

type AvailabilityController struct {
	store storage.Storage
}

func NewAvailabilityController(store storage.Storage) *AvailabilityController {
	return &AvailabilityController{store: store}
}

func (avc *AvailabilityController) ListByProvider(c *gin.Context) {
	providerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid provider ID")
		return
	}
	windows, err := avc.store.GetAvailabilityByProvider(providerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve availability")
		return
	}
	c.JSON(http.StatusOK, windows)
}

func (avc *AvailabilityController) Create(c *gin.Context) {
	var input CreateAvailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	// Overlapping windows for one provider are allowed.
	window, err := avc.store.CreateAvailability(&models.Availability{
		ProviderID:  input.ProviderID,
		DayOfWeek:   *input.DayOfWeek,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		IsAvailable: available,
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create availability")
		return
	}
	c.JSON(http.StatusCreated, window)
}

func (avc *AvailabilityController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input models.AvailabilityUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	window, err := avc.store.UpdateAvailability(id, &input)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update availability")
		return
	}
	if window == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Availability not found")
		return
	}
	c.JSON(http.StatusOK, window)
}
