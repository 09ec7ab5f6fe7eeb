// controllers/message.go
package controllers

import (
	"errors"
	"net/http"

	"bookline-backend/models"
	"bookline-backend/storage"
	"bookline-backend/utils"
	"bookline-backend/ws"

	"github.com/gin-gonic/gin"
)

type CreateMessageInput struct {
	SenderID   *int64       `json:"senderId"`
	ReceiverID *int64       `json:"receiverId"`
	Content    string       `json:"content" binding:"required"`
	Channel    string       `json:"channel"`
	Metadata   models.JSONB `json:"metadata"`
}

type MessageController struct {
	store storage.Storage
	hub   *ws.Hub
}

func NewMessageController(store storage.Storage, hub *ws.Hub) *MessageController {
	return &MessageController{store: store, hub: hub}
}

func (mc *MessageController) List(c *gin.Context) {
	messages, err := mc.store.GetMessages()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (mc *MessageController) ListBySender(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	messages, err := mc.store.GetMessagesBySender(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (mc *MessageController) ListByReceiver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	messages, err := mc.store.GetMessagesByReceiver(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

// Create stores the message and then pushes it to connected websocket
// clients. The broadcast is best-effort and never affects the stored
// record.
func (mc *MessageController) Create(c *gin.Context) {
	var input CreateMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Channel != "" && !models.ValidChannel(input.Channel) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid channel")
		return
	}

	message, err := mc.store.CreateMessage(&models.Message{
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
		Channel:    input.Channel,
		Metadata:   input.Metadata,
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create message")
		return
	}

	if mc.hub != nil {
		mc.hub.Broadcast("new_message", message)
	}

	c.JSON(http.StatusCreated, message)
}

func (mc *MessageController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.ValidMessageStatus(input.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	message, err := mc.store.UpdateMessageStatus(id, input.Status)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidStatus) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update message status")
		return
	}
	if message == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Message not found")
		return
	}
	c.JSON(http.StatusOK, message)
}
