// controllers/ai.go
package controllers

import (
	"errors"
	"net/http"

	"bookline-backend/models"
	"bookline-backend/services"
	"bookline-backend/storage"
	"bookline-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreatePersonaInput struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	SystemPrompt string `json:"systemPrompt" binding:"required"`
	Icon         string `json:"icon"`
	IconColor    string `json:"iconColor"`
	Active       *bool  `json:"active"`
}

type CreateSettingInput struct {
	Key         string      `json:"key" binding:"required"`
	Value       interface{} `json:"value"`
	Description string      `json:"description"`
}

type SettingValueInput struct {
	Value interface{} `json:"value" binding:"required"`
}

type UpsertSettingInput struct {
	Value       interface{} `json:"value" binding:"required"`
	Description string      `json:"description"`
}

type CreateConversationInput struct {
	PersonaID int64  `json:"personaId" binding:"required"`
	UserID    *int64 `json:"userId"`
	Title     string `json:"title"`
}

type ChatInput struct {
	Content string `json:"content" binding:"required"`
	UserID  *int64 `json:"userId"`
}

type AIController struct {
	store storage.Storage
	ai    *services.AIService
}

func NewAIController(store storage.Storage, ai *services.AIService) *AIController {
	return &AIController{store: store, ai: ai}
}

// Personas

func (aic *AIController) ListPersonas(c *gin.Context) {
	personas, err := aic.store.GetAIPersonas()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve personas")
		return
	}
	c.JSON(http.StatusOK, personas)
}

func (aic *AIController) GetPersona(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	persona, err := aic.store.GetAIPersona(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve persona")
		return
	}
	if persona == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Persona not found")
		return
	}
	c.JSON(http.StatusOK, persona)
}

func (aic *AIController) CreatePersona(c *gin.Context) {
	var input CreatePersonaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	persona, err := aic.store.CreateAIPersona(&models.AIPersona{
		Name:         input.Name,
		Description:  input.Description,
		SystemPrompt: input.SystemPrompt,
		Icon:         input.Icon,
		IconColor:    input.IconColor,
		Active:       active,
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create persona")
		return
	}
	c.JSON(http.StatusCreated, persona)
}

func (aic *AIController) UpdatePersona(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input models.AIPersonaUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	persona, err := aic.store.UpdateAIPersona(id, &input)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update persona")
		return
	}
	if persona == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Persona not found")
		return
	}
	c.JSON(http.StatusOK, persona)
}

// Settings

func (aic *AIController) ListSettings(c *gin.Context) {
	settings, err := aic.store.GetAISettings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (aic *AIController) GetSetting(c *gin.Context) {
	setting, err := aic.store.GetAISetting(c.Param("key"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve setting")
		return
	}
	if setting == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Setting not found")
		return
	}
	c.JSON(http.StatusOK, setting)
}

func (aic *AIController) CreateSetting(c *gin.Context) {
	var input CreateSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	setting, err := aic.store.CreateAISetting(&models.AISetting{
		Key:         input.Key,
		Value:       input.Value,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			utils.RespondWithError(c, http.StatusConflict, "Setting already exists")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create setting")
		return
	}
	c.JSON(http.StatusCreated, setting)
}

func (aic *AIController) UpdateSetting(c *gin.Context) {
	var input SettingValueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Value is required")
		return
	}
	setting, err := aic.store.UpdateAISetting(c.Param("key"), input.Value)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update setting")
		return
	}
	if setting == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Setting not found")
		return
	}
	c.JSON(http.StatusOK, setting)
}

// UpsertSetting creates or updates in one call, so callers do not need
// the check-then-branch pattern.
func (aic *AIController) UpsertSetting(c *gin.Context) {
	var input UpsertSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Value is required")
		return
	}
	setting, err := aic.store.UpsertAISetting(c.Param("key"), input.Value, input.Description)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save setting")
		return
	}
	c.JSON(http.StatusOK, setting)
}

// Conversations

func (aic *AIController) ListConversations(c *gin.Context) {
	conversations, err := aic.store.GetAIConversations()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve conversations")
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (aic *AIController) GetConversation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	conversation, err := aic.store.GetAIConversation(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve conversation")
		return
	}
	if conversation == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Conversation not found")
		return
	}
	c.JSON(http.StatusOK, conversation)
}

func (aic *AIController) ListConversationsByPersona(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	conversations, err := aic.store.GetAIConversationsByPersona(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve conversations")
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (aic *AIController) CreateConversation(c *gin.Context) {
	var input CreateConversationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	persona, err := aic.store.GetAIPersona(input.PersonaID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve persona")
		return
	}
	if persona == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Referenced persona not found")
		return
	}

	conversation, err := aic.store.CreateAIConversation(&models.AIConversation{
		PersonaID: input.PersonaID,
		UserID:    input.UserID,
		Title:     input.Title,
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create conversation")
		return
	}
	c.JSON(http.StatusCreated, conversation)
}

// Chat returns the canned AI reply for a conversation.
func (aic *AIController) Chat(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	reply, err := aic.ai.Respond(id, input.UserID, input.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConversationGone):
			utils.RespondWithError(c, http.StatusNotFound, "Conversation not found")
		case errors.Is(err, services.ErrAIDisabled):
			utils.RespondWithError(c, http.StatusBadRequest, "AI mode is disabled")
		case errors.Is(err, services.ErrPersonaGone), errors.Is(err, services.ErrPersonaInactive):
			utils.RespondWithError(c, http.StatusBadRequest, "Persona is not available")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate reply")
		}
		return
	}
	c.JSON(http.StatusCreated, reply)
}
