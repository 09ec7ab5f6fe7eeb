// services/ai_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"bookline-backend/models"
	"bookline-backend/storage"
)

var (
	ErrAIDisabled       = errors.New("ai mode is disabled")
	ErrConversationGone = errors.New("conversation not found")
	ErrPersonaGone      = errors.New("persona not found")
	ErrPersonaInactive  = errors.New("persona is not active")
)

// AIService produces the chat replies. Responses are canned and picked
// by simple keyword matching; there is no model behind this, the
// persona's system prompt only flavors the fallback line.
type AIService struct {
	store storage.Storage
}

func NewAIService(store storage.Storage) *AIService {
	return &AIService{store: store}
}

// Respond records the client's message on the conversation, generates a
// reply and records that too. Both land on the ai channel.
func (s *AIService) Respond(conversationID int64, userID *int64, content string) (*models.Message, error) {
	enabled, err := s.boolSetting(models.SettingAIMode)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, ErrAIDisabled
	}

	conv, err := s.store.GetAIConversation(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationGone
	}

	persona, err := s.store.GetAIPersona(conv.PersonaID)
	if err != nil {
		return nil, err
	}
	if persona == nil {
		return nil, ErrPersonaGone
	}
	if !persona.Active {
		return nil, ErrPersonaInactive
	}

	training, err := s.boolSetting(models.SettingTrainingMode)
	if err != nil {
		return nil, err
	}

	meta := models.JSONB{
		"conversation_id": conv.ID,
		"persona_id":      persona.ID,
	}
	if training {
		meta["training"] = true
	}

	if _, err := s.store.CreateMessage(&models.Message{
		SenderID: userID,
		Content:  content,
		Channel:  models.ChannelAI,
		Metadata: meta,
	}); err != nil {
		return nil, err
	}

	reply, err := s.store.CreateMessage(&models.Message{
		Content:  s.reply(persona, content),
		Channel:  models.ChannelAI,
		Metadata: meta,
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *AIService) boolSetting(key string) (bool, error) {
	setting, err := s.store.GetAISetting(key)
	if err != nil {
		return false, err
	}
	if setting == nil {
		return false, nil
	}
	b, ok := setting.Value.(bool)
	return ok && b, nil
}

// reply returns the canned response for the message.
func (s *AIService) reply(persona *models.AIPersona, content string) string {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "book") || strings.Contains(lower, "appointment"):
		return "I can help with that. Have a look at the services page, pick a time that suits you, and I'll hold the slot while you confirm your details."
	case strings.Contains(lower, "price") || strings.Contains(lower, "cost") || strings.Contains(lower, "how much"):
		return "Prices are listed per service on the booking page, and any add-ons you pick are itemized before you confirm."
	case strings.Contains(lower, "cancel") || strings.Contains(lower, "reschedul"):
		return "No problem. Send over the phone number you booked with and I'll pull up the appointment so we can change it."
	case strings.Contains(lower, "hour") || strings.Contains(lower, "open"):
		return "Opening hours vary by day. Tell me which day you have in mind and I'll check the schedule."
	default:
		return fmt.Sprintf("Thanks for your message! I'm %s. %s", persona.Name, firstSentence(persona.Description))
	}
}

func firstSentence(s string) string {
	if s == "" {
		return "How can I help you today?"
	}
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s + " How can I help you today?"
}
