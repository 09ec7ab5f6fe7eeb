package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"bookline-backend/models"
)

// MemStorage keeps every collection in process memory. A single RWMutex
// guards each read-modify-write sequence so operations stay effectively
// atomic when handlers run on multiple goroutines. Ids start at 1 and
// are never reused, even after deletion.
type MemStorage struct {
	mu sync.RWMutex

	users         map[int64]models.User
	services      map[int64]models.Service
	addons        map[int64]models.ServiceAddon
	availability  map[int64]models.Availability
	bookings      map[int64]models.Booking
	messages      map[int64]models.Message
	personas      map[int64]models.AIPersona
	settings      map[string]models.AISetting
	conversations map[int64]models.AIConversation

	nextUserID         int64
	nextServiceID      int64
	nextAddonID        int64
	nextAvailabilityID int64
	nextBookingID      int64
	nextMessageID      int64
	nextPersonaID      int64
	nextConversationID int64
}

// NewMemStorage returns a store pre-seeded with sample services,
// personas and default settings.
func NewMemStorage() *MemStorage {
	m := NewEmptyMemStorage()
	if err := Seed(m); err != nil {
		// Seed data is static; a failure here is a programming error.
		panic(fmt.Sprintf("storage: seed failed: %v", err))
	}
	return m
}

// NewEmptyMemStorage returns a store without seed data.
func NewEmptyMemStorage() *MemStorage {
	return &MemStorage{
		users:         make(map[int64]models.User),
		services:      make(map[int64]models.Service),
		addons:        make(map[int64]models.ServiceAddon),
		availability:  make(map[int64]models.Availability),
		bookings:      make(map[int64]models.Booking),
		messages:      make(map[int64]models.Message),
		personas:      make(map[int64]models.AIPersona),
		settings:      make(map[string]models.AISetting),
		conversations: make(map[int64]models.AIConversation),

		nextUserID:         1,
		nextServiceID:      1,
		nextAddonID:        1,
		nextAvailabilityID: 1,
		nextBookingID:      1,
		nextMessageID:      1,
		nextPersonaID:      1,
		nextConversationID: 1,
	}
}

// Users

func (m *MemStorage) GetUser(id int64) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *MemStorage) GetUserByUsername(username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *MemStorage) CreateUser(user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("username %q: %w", user.Username, ErrAlreadyExists)
		}
	}
	stored := *user
	stored.ID = m.nextUserID
	m.nextUserID++
	if stored.Role == "" {
		stored.Role = "client"
	}
	m.users[stored.ID] = stored
	return &stored, nil
}

// Services

func (m *MemStorage) GetServices() ([]models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Service, 0, len(m.services))
	for _, s := range m.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemStorage) GetActiveServices() ([]models.Service, error) {
	all, _ := m.GetServices()
	out := all[:0]
	for _, s := range all {
		if s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemStorage) GetService(id int64) (*models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.services[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *MemStorage) CreateService(service *models.Service) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *service
	stored.ID = m.nextServiceID
	m.nextServiceID++
	if stored.Position == models.PositionAuto {
		stored.Position = m.nextServicePositionLocked()
	}
	if stored.BufferBefore == "" {
		stored.BufferBefore = "0"
	}
	if stored.BufferAfter == "" {
		stored.BufferAfter = "0"
	}
	m.services[stored.ID] = stored
	return &stored, nil
}

// nextServicePositionLocked computes max(position)+1, or 0 for an empty
// collection. Caller must hold the lock.
func (m *MemStorage) nextServicePositionLocked() int {
	if len(m.services) == 0 {
		return 0
	}
	max := 0
	for _, s := range m.services {
		if s.Position > max {
			max = s.Position
		}
	}
	return max + 1
}

func (m *MemStorage) UpdateService(id int64, upd *models.ServiceUpdate) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[id]
	if !ok {
		return nil, nil
	}
	upd.Apply(&s)
	m.services[id] = s
	return &s, nil
}

func (m *MemStorage) UpdateServicePosition(id int64, position int) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[id]
	if !ok {
		return nil, nil
	}
	// Siblings are not renumbered; callers keep numbering consistent.
	s.Position = position
	m.services[id] = s
	return &s, nil
}

func (m *MemStorage) UpdateServicesOrder(ids []int64) ([]models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	updated := make([]models.Service, 0, len(ids))
	for i, id := range ids {
		s, ok := m.services[id]
		if !ok {
			// Ids missing from the collection are skipped; ids missing
			// from the input keep their previous positions.
			continue
		}
		s.Position = i
		m.services[id] = s
		updated = append(updated, s)
	}
	return updated, nil
}

func (m *MemStorage) DeleteService(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[id]; !ok {
		return false, nil
	}
	delete(m.services, id)
	return true, nil
}

// Service add-ons

func (m *MemStorage) GetServiceAddons() ([]models.ServiceAddon, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.ServiceAddon, 0, len(m.addons))
	for _, a := range m.addons {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemStorage) GetActiveServiceAddons() ([]models.ServiceAddon, error) {
	all, _ := m.GetServiceAddons()
	out := all[:0]
	for _, a := range all {
		if a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemStorage) GetServiceAddon(id int64) (*models.ServiceAddon, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.addons[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (m *MemStorage) CreateServiceAddon(addon *models.ServiceAddon) (*models.ServiceAddon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *addon
	stored.ID = m.nextAddonID
	m.nextAddonID++
	if stored.Position == models.PositionAuto {
		if len(m.addons) == 0 {
			stored.Position = 0
		} else {
			max := 0
			for _, a := range m.addons {
				if a.Position > max {
					max = a.Position
				}
			}
			stored.Position = max + 1
		}
	}
	m.addons[stored.ID] = stored
	return &stored, nil
}

func (m *MemStorage) UpdateServiceAddon(id int64, upd *models.ServiceAddonUpdate) (*models.ServiceAddon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.addons[id]
	if !ok {
		return nil, nil
	}
	upd.Apply(&a)
	m.addons[id] = a
	return &a, nil
}

func (m *MemStorage) UpdateServiceAddonPosition(id int64, position int) (*models.ServiceAddon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.addons[id]
	if !ok {
		return nil, nil
	}
	a.Position = position
	m.addons[id] = a
	return &a, nil
}

func (m *MemStorage) UpdateServiceAddonsOrder(ids []int64) ([]models.ServiceAddon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	updated := make([]models.ServiceAddon, 0, len(ids))
	for i, id := range ids {
		a, ok := m.addons[id]
		if !ok {
			continue
		}
		a.Position = i
		m.addons[id] = a
		updated = append(updated, a)
	}
	return updated, nil
}

func (m *MemStorage) DeleteServiceAddon(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.addons[id]; !ok {
		return false, nil
	}
	delete(m.addons, id)
	return true, nil
}

// Availability

func (m *MemStorage) GetAvailabilityByProvider(providerID int64) ([]models.Availability, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Availability{}
	for _, a := range m.availability {
		if a.ProviderID == providerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStorage) CreateAvailability(av *models.Availability) (*models.Availability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *av
	stored.ID = m.nextAvailabilityID
	m.nextAvailabilityID++
	m.availability[stored.ID] = stored
	return &stored, nil
}

func (m *MemStorage) UpdateAvailability(id int64, upd *models.AvailabilityUpdate) (*models.Availability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.availability[id]
	if !ok {
		return nil, nil
	}
	upd.Apply(&a)
	m.availability[id] = a
	return &a, nil
}

// Bookings

func (m *MemStorage) GetBookings() ([]models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStorage) GetBooking(id int64) (*models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.bookings[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (m *MemStorage) GetBookingsByPhone(phone string) ([]models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Booking{}
	for _, b := range m.bookings {
		if b.ClientPhone == phone {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateBooking validates the referenced service, derives the end time
// from the service duration and forces the initial status to pending.
// Caller-supplied status and end time are ignored.
func (m *MemStorage) CreateBooking(booking *models.Booking) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	service, ok := m.services[booking.ServiceID]
	if !ok {
		return nil, fmt.Errorf("service %d: %w", booking.ServiceID, ErrServiceNotFound)
	}
	stored := *booking
	stored.ID = m.nextBookingID
	m.nextBookingID++
	stored.Status = models.BookingStatusPending
	stored.EndTime = stored.StartTime.Add(time.Duration(service.Duration) * time.Minute)
	m.bookings[stored.ID] = stored
	return &stored, nil
}

func (m *MemStorage) UpdateBookingStatus(id int64, status string) (*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, fmt.Errorf("booking status %q: %w", status, ErrInvalidStatus)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	b.Status = status
	m.bookings[id] = b
	return &b, nil
}

// Messages

func (m *MemStorage) GetMessages() ([]models.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Message, 0, len(m.messages))
	for _, msg := range m.messages {
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStorage) GetMessagesBySender(senderID int64) ([]models.Message, error) {
	all, _ := m.GetMessages()
	out := []models.Message{}
	for _, msg := range all {
		if msg.SenderID != nil && *msg.SenderID == senderID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *MemStorage) GetMessagesByReceiver(receiverID int64) ([]models.Message, error) {
	all, _ := m.GetMessages()
	out := []models.Message{}
	for _, msg := range all {
		if msg.ReceiverID != nil && *msg.ReceiverID == receiverID {
			out = append(out, msg)
		}
	}
	return out, nil
}

// CreateMessage assigns the timestamp server-side and forces the
// initial status to sent.
func (m *MemStorage) CreateMessage(message *models.Message) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *message
	stored.ID = m.nextMessageID
	m.nextMessageID++
	stored.Status = models.MessageStatusSent
	stored.Timestamp = time.Now().UTC()
	if stored.Channel == "" {
		stored.Channel = models.ChannelSMS
	}
	m.messages[stored.ID] = stored
	return &stored, nil
}

func (m *MemStorage) UpdateMessageStatus(id int64, status string) (*models.Message, error) {
	if !models.ValidMessageStatus(status) {
		return nil, fmt.Errorf("message status %q: %w", status, ErrInvalidStatus)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return nil, nil
	}
	msg.Status = status
	m.messages[id] = msg
	return &msg, nil
}

// AI personas

func (m *MemStorage) GetAIPersonas() ([]models.AIPersona, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.AIPersona, 0, len(m.personas))
	for _, p := range m.personas {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStorage) GetAIPersona(id int64) (*models.AIPersona, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.personas[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *MemStorage) CreateAIPersona(persona *models.AIPersona) (*models.AIPersona, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *persona
	stored.ID = m.nextPersonaID
	m.nextPersonaID++
	if stored.Icon == "" {
		stored.Icon = "robot"
	}
	if stored.IconColor == "" {
		stored.IconColor = "blue"
	}
	m.personas[stored.ID] = stored
	return &stored, nil
}

func (m *MemStorage) UpdateAIPersona(id int64, upd *models.AIPersonaUpdate) (*models.AIPersona, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.personas[id]
	if !ok {
		return nil, nil
	}
	upd.Apply(&p)
	m.personas[id] = p
	return &p, nil
}

// AI settings

func (m *MemStorage) GetAISettings() ([]models.AISetting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.AISetting, 0, len(m.settings))
	for _, s := range m.settings {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *MemStorage) GetAISetting(key string) (*models.AISetting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.settings[key]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *MemStorage) CreateAISetting(setting *models.AISetting) (*models.AISetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.settings[setting.Key]; ok {
		return nil, fmt.Errorf("setting %q: %w", setting.Key, ErrAlreadyExists)
	}
	stored := *setting
	m.settings[stored.Key] = stored
	return &stored, nil
}

// UpdateAISetting replaces the value only; the description is
// preserved.
func (m *MemStorage) UpdateAISetting(key string, value interface{}) (*models.AISetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.settings[key]
	if !ok {
		return nil, nil
	}
	s.Value = value
	m.settings[key] = s
	return &s, nil
}

// UpsertAISetting creates the key or replaces its value atomically
// under the store lock, so callers no longer need the check-then-branch
// dance between create and update.
func (m *MemStorage) UpsertAISetting(key string, value interface{}, description string) (*models.AISetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.settings[key]
	if !ok {
		s = models.AISetting{Key: key, Description: description}
	}
	s.Value = value
	if description != "" {
		s.Description = description
	}
	m.settings[key] = s
	return &s, nil
}

// AI conversations

func (m *MemStorage) GetAIConversations() ([]models.AIConversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.AIConversation, 0, len(m.conversations))
	for _, c := range m.conversations {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStorage) GetAIConversation(id int64) (*models.AIConversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.conversations[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *MemStorage) GetAIConversationsByPersona(personaID int64) ([]models.AIConversation, error) {
	all, _ := m.GetAIConversations()
	out := []models.AIConversation{}
	for _, c := range all {
		if c.PersonaID == personaID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MemStorage) CreateAIConversation(conv *models.AIConversation) (*models.AIConversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *conv
	stored.ID = m.nextConversationID
	m.nextConversationID++
	if stored.Title == "" {
		stored.Title = "New Conversation"
	}
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.conversations[stored.ID] = stored
	return &stored, nil
}
