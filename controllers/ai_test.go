package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"bookline-backend/models"
	"bookline-backend/services"
	"bookline-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAIRouter(store storage.Storage) *gin.Engine {
	r := gin.New()
	aic := NewAIController(store, services.NewAIService(store))
	r.GET("/api/ai/personas", aic.ListPersonas)
	r.GET("/api/ai/personas/:id", aic.GetPersona)
	r.POST("/api/ai/personas", aic.CreatePersona)
	r.PATCH("/api/ai/personas/:id", aic.UpdatePersona)
	r.GET("/api/ai/settings", aic.ListSettings)
	r.GET("/api/ai/settings/:key", aic.GetSetting)
	r.POST("/api/ai/settings", aic.CreateSetting)
	r.PATCH("/api/ai/settings/:key", aic.UpdateSetting)
	r.PUT("/api/ai/settings/:key", aic.UpsertSetting)
	r.GET("/api/ai/conversations", aic.ListConversations)
	r.POST("/api/ai/conversations", aic.CreateConversation)
	r.POST("/api/ai/conversations/:id/messages", aic.Chat)
	return r
}

func TestCreateSettingConflict(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	r := setupAIRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/ai/settings", gin.H{"key": "ai_mode", "value": false})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, r, http.MethodPost, "/api/ai/settings", gin.H{"key": "ai_mode", "value": true})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateSettingEndpoint(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	store.CreateAISetting(&models.AISetting{Key: "ai_mode", Value: false, Description: "responder toggle"})
	r := setupAIRouter(store)

	w := performJSON(t, r, http.MethodPatch, "/api/ai/settings/ai_mode", gin.H{"value": true})
	require.Equal(t, http.StatusOK, w.Code)

	var setting models.AISetting
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &setting))
	assert.Equal(t, true, setting.Value)
	assert.Equal(t, "responder toggle", setting.Description)

	w = performJSON(t, r, http.MethodPatch, "/api/ai/settings/missing", gin.H{"value": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpsertSettingEndpoint(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	r := setupAIRouter(store)

	// First call creates.
	w := performJSON(t, r, http.MethodPut, "/api/ai/settings/reminder_hours", gin.H{"value": 12, "description": "lead window"})
	require.Equal(t, http.StatusOK, w.Code)

	// Second call replaces the value.
	w = performJSON(t, r, http.MethodPut, "/api/ai/settings/reminder_hours", gin.H{"value": 48})
	require.Equal(t, http.StatusOK, w.Code)

	var setting models.AISetting
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &setting))
	assert.Equal(t, float64(48), setting.Value)
	assert.Equal(t, "lead window", setting.Description)
}

func TestCreatePersonaAndPatch(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	r := setupAIRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/ai/personas", gin.H{
		"name":         "Booking Assistant",
		"systemPrompt": "Help clients find open slots.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var persona models.AIPersona
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &persona))
	assert.True(t, persona.Active)
	assert.Equal(t, "robot", persona.Icon)

	w = performJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/ai/personas/%d", persona.ID), gin.H{"active": false})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &persona))
	assert.False(t, persona.Active)
}

func TestCreateConversationRequiresPersona(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	r := setupAIRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/ai/conversations", gin.H{"personaId": 99})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatEndpoint(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	persona, _ := store.CreateAIPersona(&models.AIPersona{Name: "Helper", SystemPrompt: "help", Active: true})
	conv, _ := store.CreateAIConversation(&models.AIConversation{PersonaID: persona.ID})
	r := setupAIRouter(store)

	// AI mode defaults off.
	w := performJSON(t, r, http.MethodPost, fmt.Sprintf("/api/ai/conversations/%d/messages", conv.ID), gin.H{"content": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	store.CreateAISetting(&models.AISetting{Key: models.SettingAIMode, Value: true})

	w = performJSON(t, r, http.MethodPost, fmt.Sprintf("/api/ai/conversations/%d/messages", conv.ID), gin.H{"content": "how much is a gel manicure?"})
	require.Equal(t, http.StatusCreated, w.Code)

	var reply models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, models.ChannelAI, reply.Channel)
	assert.Contains(t, reply.Content, "Prices")

	w = performJSON(t, r, http.MethodPost, "/api/ai/conversations/99/messages", gin.H{"content": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
