// Package storage owns every entity collection and all derived-field
// logic. Handlers validate input and delegate here; the store never
// logs, never retries, and signals absence with a (nil, nil) return
// instead of an error.
package storage

import (
	"errors"

	"bookline-backend/models"
)

var (
	// ErrServiceNotFound is returned when a booking references a
	// service id that does not exist. Nothing is stored.
	ErrServiceNotFound = errors.New("referenced service not found")

	// ErrInvalidStatus is returned by status transitions called with a
	// value outside the entity's allowed state set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrAlreadyExists is returned when creating a user with a taken
	// username or a setting with an existing key.
	ErrAlreadyExists = errors.New("already exists")
)

// Storage is the contract shared by the in-memory store and the
// database-backed store. Lookups return (nil, nil) when the id or key
// is absent.
type Storage interface {
	// Users
	GetUser(id int64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(user *models.User) (*models.User, error)

	// Services
	GetServices() ([]models.Service, error)
	GetActiveServices() ([]models.Service, error)
	GetService(id int64) (*models.Service, error)
	CreateService(service *models.Service) (*models.Service, error)
	UpdateService(id int64, upd *models.ServiceUpdate) (*models.Service, error)
	UpdateServicePosition(id int64, position int) (*models.Service, error)
	UpdateServicesOrder(ids []int64) ([]models.Service, error)
	DeleteService(id int64) (bool, error)

	// Service add-ons
	GetServiceAddons() ([]models.ServiceAddon, error)
	GetActiveServiceAddons() ([]models.ServiceAddon, error)
	GetServiceAddon(id int64) (*models.ServiceAddon, error)
	CreateServiceAddon(addon *models.ServiceAddon) (*models.ServiceAddon, error)
	UpdateServiceAddon(id int64, upd *models.ServiceAddonUpdate) (*models.ServiceAddon, error)
	UpdateServiceAddonPosition(id int64, position int) (*models.ServiceAddon, error)
	UpdateServiceAddonsOrder(ids []int64) ([]models.ServiceAddon, error)
	DeleteServiceAddon(id int64) (bool, error)

	// Availability
	GetAvailabilityByProvider(providerID int64) ([]models.Availability, error)
	CreateAvailability(av *models.Availability) (*models.Availability, error)
	UpdateAvailability(id int64, upd *models.AvailabilityUpdate) (*models.Availability, error)

	// Bookings
	GetBookings() ([]models.Booking, error)
	GetBooking(id int64) (*models.Booking, error)
	GetBookingsByPhone(phone string) ([]models.Booking, error)
	CreateBooking(booking *models.Booking) (*models.Booking, error)
	UpdateBookingStatus(id int64, status string) (*models.Booking, error)

	// Messages
	GetMessages() ([]models.Message, error)
	GetMessagesBySender(senderID int64) ([]models.Message, error)
	GetMessagesByReceiver(receiverID int64) ([]models.Message, error)
	CreateMessage(message *models.Message) (*models.Message, error)
	UpdateMessageStatus(id int64, status string) (*models.Message, error)

	// AI personas
	GetAIPersonas() ([]models.AIPersona, error)
	GetAIPersona(id int64) (*models.AIPersona, error)
	CreateAIPersona(persona *models.AIPersona) (*models.AIPersona, error)
	UpdateAIPersona(id int64, upd *models.AIPersonaUpdate) (*models.AIPersona, error)

	// AI settings (string-keyed registry)
	GetAISettings() ([]models.AISetting, error)
	GetAISetting(key string) (*models.AISetting, error)
	CreateAISetting(setting *models.AISetting) (*models.AISetting, error)
	UpdateAISetting(key string, value interface{}) (*models.AISetting, error)
	UpsertAISetting(key string, value interface{}, description string) (*models.AISetting, error)

	// AI conversations
	GetAIConversations() ([]models.AIConversation, error)
	GetAIConversation(id int64) (*models.AIConversation, error)
	GetAIConversationsByPersona(personaID int64) ([]models.AIConversation, error)
	CreateAIConversation(conv *models.AIConversation) (*models.AIConversation, error)
}
