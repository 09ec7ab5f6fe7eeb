package models

import "time"

const (
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
	MessageStatusFailed    = "failed"
)

const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
	ChannelAI       = "ai"
)

type Message struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	SenderID   *int64    `json:"senderId"`   // nil for system/AI messages
	ReceiverID *int64    `json:"receiverId"` // nil for broadcast messages
	Content    string    `json:"content" gorm:"not null"`
	Channel    string    `json:"channel" gorm:"default:'sms'"`
	Status     string    `json:"status" gorm:"default:'sent'"`
	Timestamp  time.Time `json:"timestamp"` // server-assigned, never client-supplied
	Metadata   JSONB     `json:"metadata" gorm:"type:text"`
}

func ValidMessageStatus(s string) bool {
	switch s {
	case MessageStatusSent, MessageStatusDelivered, MessageStatusRead, MessageStatusFailed:
		return true
	}
	return false
}

func ValidChannel(c string) bool {
	switch c {
	case ChannelSMS, ChannelWhatsApp, ChannelAI:
		return true
	}
	return false
}
