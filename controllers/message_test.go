package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"bookline-backend/models"
	"bookline-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMessageRouter(store storage.Storage) *gin.Engine {
	r := gin.New()
	mc := NewMessageController(store, nil)
	r.GET("/api/messages", mc.List)
	r.GET("/api/messages/sender/:id", mc.ListBySender)
	r.GET("/api/messages/receiver/:id", mc.ListByReceiver)
	r.POST("/api/messages", mc.Create)
	r.PATCH("/api/messages/:id/status", mc.UpdateStatus)
	return r
}

func TestCreateMessage(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	r := setupMessageRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/messages", gin.H{
		"senderId": 1,
		"content":  "Hello",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var message models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &message))
	assert.Equal(t, models.MessageStatusSent, message.Status)
	assert.Equal(t, models.ChannelSMS, message.Channel)
	assert.False(t, message.Timestamp.IsZero())
}

func TestCreateMessageRejectsUnknownChannel(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	r := setupMessageRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/messages", gin.H{
		"content": "Hello",
		"channel": "carrier-pigeon",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMessageStatusEndpoint(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	message, _ := store.CreateMessage(&models.Message{Content: "hi"})
	r := setupMessageRouter(store)

	w := performJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/messages/%d/status", message.ID), gin.H{"status": "read"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.MessageStatusRead, updated.Status)

	w = performJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/messages/%d/status", message.ID), gin.H{"status": "bounced"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(t, r, http.MethodPatch, "/api/messages/99/status", gin.H{"status": "read"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMessagesBySenderEndpoint(t *testing.T) {
	store := storage.NewEmptyMemStorage()
	one, two := int64(1), int64(2)
	store.CreateMessage(&models.Message{SenderID: &one, ReceiverID: &two, Content: "a"})
	store.CreateMessage(&models.Message{SenderID: &two, ReceiverID: &one, Content: "b"})
	r := setupMessageRouter(store)

	w := performJSON(t, r, http.MethodGet, "/api/messages/sender/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var messages []models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "a", messages[0].Content)
}
