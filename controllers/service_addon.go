// controllers/service_addon.go
package controllers

import (
	"net/http"

	"bookline-backend/models"
	"bookline-backend/storage"
	"bookline-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateServiceAddonInput struct {
	Name                 string `json:"name" binding:"required"`
	Description          string `json:"description"`
	Price                int64  `json:"price" binding:"min=0"` // in cents
	Duration             int    `json:"duration" binding:"min=0"`
	Photo                string `json:"photo"`
	Active               *bool  `json:"active"`
	DisplayOnBookingPage *bool  `json:"displayOnBookingPage"`
	AddPriceToDeposit    *bool  `json:"addPriceToDeposit"`
	Position             *int   `json:"position"`
}

type AddonOrderInput struct {
	ServiceIDs []int64 `json:"serviceIds" binding:"required"`
}

type ServiceAddonController struct {
	store storage.Storage
}

func NewServiceAddonController(store storage.Storage) *ServiceAddonController {
	return &ServiceAddonController{store: store}
}

func (ac *ServiceAddonController) List(c *gin.Context) {
	var (
		addons []models.ServiceAddon
		err    error
	)
	if c.Query("active") == "true" {
		addons, err = ac.store.GetActiveServiceAddons()
	} else {
		addons, err = ac.store.GetServiceAddons()
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve add-ons")
		return
	}
	c.JSON(http.StatusOK, addons)
}

func (ac *ServiceAddonController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	addon, err := ac.store.GetServiceAddon(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve add-on")
		return
	}
	if addon == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Add-on not found")
		return
	}
	c.JSON(http.StatusOK, addon)
}

func (ac *ServiceAddonController) Create(c *gin.Context) {
	var input CreateServiceAddonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	display := true
	if input.DisplayOnBookingPage != nil {
		display = *input.DisplayOnBookingPage
	}
	deposit := false
	if input.AddPriceToDeposit != nil {
		deposit = *input.AddPriceToDeposit
	}
	position := models.PositionAuto
	if input.Position != nil {
		position = *input.Position
	}

	addon, err := ac.store.CreateServiceAddon(&models.ServiceAddon{
		Name:                 input.Name,
		Description:          input.Description,
		Price:                input.Price,
		Duration:             input.Duration,
		Photo:                input.Photo,
		Active:               active,
		DisplayOnBookingPage: display,
		AddPriceToDeposit:    deposit,
		Position:             position,
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create add-on")
		return
	}
	c.JSON(http.StatusCreated, addon)
}

func (ac *ServiceAddonController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input models.ServiceAddonUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	addon, err := ac.store.UpdateServiceAddon(id, &input)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update add-on")
		return
	}
	if addon == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Add-on not found")
		return
	}
	c.JSON(http.StatusOK, addon)
}

func (ac *ServiceAddonController) UpdatePosition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input PositionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	addon, err := ac.store.UpdateServiceAddonPosition(id, *input.Position)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update add-on position")
		return
	}
	if addon == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Add-on not found")
		return
	}
	c.JSON(http.StatusOK, addon)
}

func (ac *ServiceAddonController) Reorder(c *gin.Context) {
	var input AddonOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	addons, err := ac.store.UpdateServiceAddonsOrder(input.ServiceIDs)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reorder add-ons")
		return
	}
	c.JSON(http.StatusOK, addons)
}

func (ac *ServiceAddonController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := ac.store.DeleteServiceAddon(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete add-on")
		return
	}
	if !deleted {
		utils.RespondWithError(c, http.StatusNotFound, "Add-on not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Add-on deleted successfully"})
}
