// controllers/service.go
package controllers

import (
	"net/http"
	"strconv"

	"bookline-backend/models"
	"bookline-backend/storage"
	"bookline-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Duration     int    `json:"duration" binding:"required,min=1"` // in minutes
	Price        int64  `json:"price" binding:"min=0"`             // in cents
	Active       *bool  `json:"active"`
	Position     *int   `json:"position"`
	Photo        string `json:"photo"`
	BufferBefore string `json:"bufferBefore"`
	BufferAfter  string `json:"bufferAfter"`
}

type PositionInput struct {
	Position *int `json:"position" binding:"required"`
}

type ServiceOrderInput struct {
	ServiceIDs []int64 `json:"serviceIds" binding:"required"`
}

type ServiceController struct {
	store storage.Storage
}

func NewServiceController(store storage.Storage) *ServiceController {
	return &ServiceController{store: store}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return id, true
}

// List returns all services ordered by position; ?active=true filters
// to the active ones.
func (sc *ServiceController) List(c *gin.Context) {
	var (
		services []models.Service
		err      error
	)
	if c.Query("active") == "true" {
		services, err = sc.store.GetActiveServices()
	} else {
		services, err = sc.store.GetServices()
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}
	c.JSON(http.StatusOK, services)
}

func (sc *ServiceController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	service, err := sc.store.GetService(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve service")
		return
	}
	if service == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}
	c.JSON(http.StatusOK, service)
}

func (sc *ServiceController) Create(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	position := models.PositionAuto
	if input.Position != nil {
		position = *input.Position
	}

	service, err := sc.store.CreateService(&models.Service{
		Name:         input.Name,
		Description:  input.Description,
		Duration:     input.Duration,
		Price:        input.Price,
		Active:       active,
		Position:     position,
		Photo:        input.Photo,
		BufferBefore: input.BufferBefore,
		BufferAfter:  input.BufferAfter,
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (sc *ServiceController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input models.ServiceUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	service, err := sc.store.UpdateService(id, &input)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}
	if service == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}
	c.JSON(http.StatusOK, service)
}

func (sc *ServiceController) UpdatePosition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input PositionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	service, err := sc.store.UpdateServicePosition(id, *input.Position)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service position")
		return
	}
	if service == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}
	c.JSON(http.StatusOK, service)
}

// Reorder assigns positions by index for the supplied ids; services not
// listed keep their previous positions.
func (sc *ServiceController) Reorder(c *gin.Context) {
	var input ServiceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	services, err := sc.store.UpdateServicesOrder(input.ServiceIDs)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reorder services")
		return
	}
	c.JSON(http.StatusOK, services)
}

func (sc *ServiceController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := sc.store.DeleteService(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if !deleted {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
