package storage

import (
	"errors"
	"fmt"
	"time"

	"bookline-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GormStorage implements Storage on a relational database. It exists so
// the in-memory store can be swapped for a durable one behind the same
// interface; MemStorage remains the default backend.
type GormStorage struct {
	db *gorm.DB
}

// OpenPostgres connects to the database referenced by dsn.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// NewGormStorage migrates the schema and wraps db in the Storage
// contract.
func NewGormStorage(db *gorm.DB) (*GormStorage, error) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.ServiceAddon{},
		&models.Availability{},
		&models.Booking{},
		&models.Message{},
		&models.AIPersona{},
		&models.AISetting{},
		&models.AIConversation{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &GormStorage{db: db}, nil
}

// SeedIfEmpty loads the sample catalogue when the services table has no
// rows, mirroring the fresh-construction seeding of MemStorage.
func (g *GormStorage) SeedIfEmpty() error {
	var count int64
	if err := g.db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return Seed(g)
}

func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// Users

func (g *GormStorage) GetUser(id int64) (*models.User, error) {
	var u models.User
	if err := g.db.First(&u, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &u, nil
}

func (g *GormStorage) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	if err := g.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &u, nil
}

func (g *GormStorage) CreateUser(user *models.User) (*models.User, error) {
	existing, err := g.GetUserByUsername(user.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("username %q: %w", user.Username, ErrAlreadyExists)
	}
	stored := *user
	stored.ID = 0
	if stored.Role == "" {
		stored.Role = "client"
	}
	if err := g.db.Create(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// Services

func (g *GormStorage) GetServices() ([]models.Service, error) {
	var out []models.Service
	if err := g.db.Order("position asc, id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GormStorage) GetActiveServices() ([]models.Service, error) {
	var out []models.Service
	if err := g.db.Where("active = ?", true).Order("position asc, id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GormStorage) GetService(id int64) (*models.Service, error) {
	var s models.Service
	if err := g.db.First(&s, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &s, nil
}

func (g *GormStorage) CreateService(service *models.Service) (*models.Service, error) {
	stored := *service
	stored.ID = 0
	if stored.BufferBefore == "" {
		stored.BufferBefore = "0"
	}
	if stored.BufferAfter == "" {
		stored.BufferAfter = "0"
	}
	err := g.db.Transaction(func(tx *gorm.DB) error {
		if stored.Position == models.PositionAuto {
			pos, err := nextPosition(tx, &models.Service{})
			if err != nil {
				return err
			}
			stored.Position = pos
		}
		return tx.Create(&stored).Error
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// nextPosition returns max(position)+1 for the model's table, or 0 when
// it is empty.
func nextPosition(tx *gorm.DB, model interface{}) (int, error) {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}
	var max int
	if err := tx.Model(model).Select("COALESCE(MAX(position), 0)").Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (g *GormStorage) UpdateService(id int64, upd *models.ServiceUpdate) (*models.Service, error) {
	var s models.Service
	if err := g.db.First(&s, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	upd.Apply(&s)
	if err := g.db.Save(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (g *GormStorage) UpdateServicePosition(id int64, position int) (*models.Service, error) {
	var s models.Service
	if err := g.db.First(&s, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	s.Position = position
	if err := g.db.Save(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (g *GormStorage) UpdateServicesOrder(ids []int64) ([]models.Service, error) {
	updated := make([]models.Service, 0, len(ids))
	err := g.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			var s models.Service
			if err := tx.First(&s, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			s.Position = i
			if err := tx.Save(&s).Error; err != nil {
				return err
			}
			updated = append(updated, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (g *GormStorage) DeleteService(id int64) (bool, error) {
	res := g.db.Delete(&models.Service{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Service add-ons

func (g *GormStorage) GetServiceAddons() ([]models.ServiceAddon, error) {
	var out []models.ServiceAddon
	if err := g.db.Order("position asc, id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GormStorage) GetActiveServiceAddons() ([]models.ServiceAddon, error) {
	var out []models.ServiceAddon
	if err := g.db.Where("active = ?", true).Order("position asc, id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GormStorage) GetServiceAddon(id int64) (*models.ServiceAddon, error) {
	var a models.ServiceAddon
	if err := g.db.First(&a, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &a, nil
}

func (g *GormStorage) CreateServiceAddon(addon *models.ServiceAddon) (*models.ServiceAddon, error) {
	stored := *addon
	stored.ID = 0
	err := g.db.Transaction(func(tx *gorm.DB) error {
		if stored.Position == models.PositionAuto {
			pos, err := nextPosition(tx, &models.ServiceAddon{})
			if err != nil {
				return err
			}
			stored.Position = pos
		}
		return tx.Create(&stored).Error
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (g *GormStorage) UpdateServiceAddon(id int64, upd *models.ServiceAddonUpdate) (*models.ServiceAddon, error) {
	var a models.ServiceAddon
	if err := g.db.First(&a, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	upd.Apply(&a)
	if err := g.db.Save(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (g *GormStorage) UpdateServiceAddonPosition(id int64, position int) (*models.ServiceAddon, error) {
	var a models.ServiceAddon
	if err := g.db.First(&a, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	a.Position = position
	if err := g.db.Save(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (g *GormStorage) UpdateServiceAddonsOrder(ids []int64) ([]models.ServiceAddon, error) {
	updated := make([]models.ServiceAddon, 0, len(ids))
	err := g.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			var a models.ServiceAddon
			if err := tx.First(&a, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			a.Position = i
			if err := tx.Save(&a).Error; err != nil {
				return err
			}
			updated = append(updated, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (g *GormStorage) DeleteServiceAddon(id int64) (bool, error) {
	res := g.db.Delete(&models.ServiceAddon{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Availability

func (g *GormStorage) GetAvailabilityByProvider(providerID int64) ([]models.Availability, error) {
	out := []models.Availability{}
	if err := g.db.Where("provider_id = ?", providerID).Order("id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GormStorage) CreateAvailability(av *models.Availability) (*models.Availability, error) {
	stored := *av
	stored.ID = 0
	if err := g.db.Create(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (g *GormStorage) UpdateAvailability(id int64, upd *models.AvailabilityUpdate) (*models.Availability, error) {
	var a models.Availability
	if err := g.db.First(&a, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	upd.Apply(&a)
	if err := g.db.Save(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Bookings

func (g *GormStorage) GetBookings() ([]models.Booking, error) {
	var out []models.Booking
	if err := g.db.Order("id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GormStorage) GetBooking(id int64) (*models.Booking, error) {
	var b models.Booking
	if err := g.db.First(&b, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &b, nil
}

func (g *GormStorage) GetBookingsByPhone(phone string) ([]models.Booking, error) {
	out := []models.Booking{}
	if err := g.db.Where("client_phone = ?", phone).Order("id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GormStorage) CreateBooking(booking *models.Booking) (*models.Booking, error) {
	stored := *booking
	stored.ID = 0
	err := g.db.Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.First(&service, booking.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("service %d: %w", booking.ServiceID, ErrServiceNotFound)
			}
			return err
		}
		stored.Status = models.BookingStatusPending
		stored.EndTime = stored.StartTime.Add(time.Duration(service.Duration) * time.Minute)
		return tx.Create(&stored).Error
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (g *GormStorage) UpdateBookingStatus(id int64, status string) (*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, fmt.Errorf("booking status %q: %w", status, ErrInvalidStatus)
	}
	var b models.Booking
	if err := g.db.First(&b, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	b.Status = status
	if err := g.db.Save(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Messages

func (g *GormStorage) GetMessages() ([]models.Message, error) {
	var out []models.Message
	if err := g.db.Order("id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GormStorage) GetMessagesBySender(senderID int64) ([]models.Message, error) {
	out := []models.Message{}
	if err := g.db.Where("sender_id = ?", senderID).Order("id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GormStorage) GetMessagesByReceiver(receiverID int64) ([]models.Message, error) {
	out := []models.Message{}
	if err := g.db.Where("receiver_id = ?", receiverID).Order("id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GormStorage) CreateMessage(message *models.Message) (*models.Message, error) {
	stored := *message
	stored.ID = 0
	stored.Status = models.MessageStatusSent
	stored.Timestamp = time.Now().UTC()
	if stored.Channel == "" {
		stored.Channel = models.ChannelSMS
	}
	if err := g.db.Create(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (g *GormStorage) UpdateMessageStatus(id int64, status string) (*models.Message, error) {
	if !models.ValidMessageStatus(status) {
		return nil, fmt.Errorf("message status %q: %w", status, ErrInvalidStatus)
	}
	var msg models.Message
	if err := g.db.First(&msg, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	msg.Status = status
	if err := g.db.Save(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// AI personas

func (g *GormStorage) GetAIPersonas() ([]models.AIPersona, error) {
	var out []models.AIPersona
	if err := g.db.Order("id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GormStorage) GetAIPersona(id int64) (*models.AIPersona, error) {
	var p models.AIPersona
	if err := g.db.First(&p, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &p, nil
}

func (g *GormStorage) CreateAIPersona(persona *models.AIPersona) (*models.AIPersona, error) {
	stored := *persona
	stored.ID = 0
	if stored.Icon == "" {
		stored.Icon = "robot"
	}
	if stored.IconColor == "" {
		stored.IconColor = "blue"
	}
	if err := g.db.Create(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (g *GormStorage) UpdateAIPersona(id int64, upd *models.AIPersonaUpdate) (*models.AIPersona, error) {
	var p models.AIPersona
	if err := g.db.First(&p, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	upd.Apply(&p)
	if err := g.db.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// AI settings

func (g *GormStorage) GetAISettings() ([]models.AISetting, error) {
	var out []models.AISetting
	if err := g.db.Order("key asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GormStorage) GetAISetting(key string) (*models.AISetting, error) {
	var s models.AISetting
	if err := g.db.Where("key = ?", key).First(&s).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &s, nil
}

func (g *GormStorage) CreateAISetting(setting *models.AISetting) (*models.AISetting, error) {
	existing, err := g.GetAISetting(setting.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("setting %q: %w", setting.Key, ErrAlreadyExists)
	}
	stored := *setting
	if err := g.db.Create(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (g *GormStorage) UpdateAISetting(key string, value interface{}) (*models.AISetting, error) {
	var s models.AISetting
	if err := g.db.Where("key = ?", key).First(&s).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	s.Value = value
	if err := g.db.Save(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (g *GormStorage) UpsertAISetting(key string, value interface{}, description string) (*models.AISetting, error) {
	var s models.AISetting
	err := g.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("key = ?", key).First(&s).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s = models.AISetting{Key: key, Value: value, Description: description}
			return tx.Create(&s).Error
		}
		if err != nil {
			return err
		}
		s.Value = value
		if description != "" {
			s.Description = description
		}
		return tx.Save(&s).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// AI conversations

func (g *GormStorage) GetAIConversations() ([]models.AIConversation, error) {
	var out []models.AIConversation
	if err := g.db.Order("id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GormStorage) GetAIConversation(id int64) (*models.AIConversation, error) {
	var c models.AIConversation
	if err := g.db.First(&c, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &c, nil
}

func (g *GormStorage) GetAIConversationsByPersona(personaID int64) ([]models.AIConversation, error) {
	out := []models.AIConversation{}
	if err := g.db.Where("persona_id = ?", personaID).Order("id asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GormStorage) CreateAIConversation(conv *models.AIConversation) (*models.AIConversation, error) {
	stored := *conv
	stored.ID = 0
	if stored.Title == "" {
		stored.Title = "New Conversation"
	}
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if err := g.db.Create(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}
