package models

import "time"

type AIPersona struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"not null"`
	Description  string `json:"description"`
	SystemPrompt string `json:"systemPrompt" gorm:"not null"`
	Icon         string `json:"icon" gorm:"default:'robot'"`
	IconColor    string `json:"iconColor" gorm:"default:'blue'"`
	Active       bool   `json:"active"`
}

type AIPersonaUpdate struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	SystemPrompt *string `json:"systemPrompt"`
	Icon         *string `json:"icon"`
	IconColor    *string `json:"iconColor"`
	Active       *bool   `json:"active"`
}

func (u *AIPersonaUpdate) Apply(p *AIPersona) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.SystemPrompt != nil {
		p.SystemPrompt = *u.SystemPrompt
	}
	if u.Icon != nil {
		p.Icon = *u.Icon
	}
	if u.IconColor != nil {
		p.IconColor = *u.IconColor
	}
	if u.Active != nil {
		p.Active = *u.Active
	}
}

// AISetting is keyed by string, unlike the id-keyed entities. Value is
// an arbitrary JSON payload; callers agree out-of-band on its shape.
type AISetting struct {
	Key         string      `json:"key" gorm:"primaryKey"`
	Value       interface{} `json:"value" gorm:"serializer:json"`
	Description string      `json:"description"`
}

// Well-known setting keys.
const (
	SettingAIMode                = "ai_mode"
	SettingTrainingMode          = "training_mode"
	SettingTrainingSettings      = "training_settings"
	SettingReminderHours         = "reminder_hours"
	SettingMaxAdvanceBookingDays = "max_advance_booking_days"
)

type AIConversation struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PersonaID int64     `json:"personaId" gorm:"index;not null"`
	UserID    *int64    `json:"userId"` // nil for anonymous conversations
	Title     string    `json:"title" gorm:"default:'New Conversation'"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
