// services/reminder_service.go
package services

import (
	"fmt"
	"sync"
	"time"

	"bookline-backend/models"
	"bookline-backend/storage"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const defaultReminderHours = 24

// ReminderService texts clients ahead of their confirmed bookings. The
// lead window comes from the reminder_hours key in the settings
// registry, so it can be changed without a restart. Every attempt is
// recorded as a Message.
type ReminderService struct {
	store  storage.Storage
	sms    *SMSService
	logger zerolog.Logger
	cron   *cron.Cron

	mu       sync.Mutex
	reminded map[int64]bool // booking ids already handled this process
}

func NewReminderService(store storage.Storage, sms *SMSService, logger zerolog.Logger) *ReminderService {
	return &ReminderService{
		store:    store,
		sms:      sms,
		logger:   logger,
		reminded: make(map[int64]bool),
	}
}

// StartScheduler begins the periodic sweep. spec is a standard cron
// expression.
func (s *ReminderService) StartScheduler(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, s.SendDueReminders); err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	c.Start()
	s.cron = c
	s.logger.Info().Str("schedule", spec).Msg("reminder scheduler started")
	return nil
}

// Stop halts the scheduler.
func (s *ReminderService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// SendDueReminders finds confirmed bookings starting within the lead
// window and sends each client one reminder.
func (s *ReminderService) SendDueReminders() {
	window := s.leadWindow()
	now := time.Now()
	cutoff := now.Add(window)

	bookings, err := s.store.GetBookings()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch bookings")
		return
	}

	for _, b := range bookings {
		if b.Status != models.BookingStatusConfirmed {
			continue
		}
		if b.StartTime.Before(now) || b.StartTime.After(cutoff) {
			continue
		}
		if s.alreadyReminded(b.ID) {
			continue
		}
		s.remind(b)
	}
}

func (s *ReminderService) leadWindow() time.Duration {
	hours := defaultReminderHours
	setting, err := s.store.GetAISetting(models.SettingReminderHours)
	if err == nil && setting != nil {
		// JSON numbers decode as float64; seeds may hold native ints.
		switch v := setting.Value.(type) {
		case float64:
			hours = int(v)
		case int:
			hours = v
		}
	}
	if hours <= 0 {
		hours = defaultReminderHours
	}
	return time.Duration(hours) * time.Hour
}

func (s *ReminderService) alreadyReminded(bookingID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reminded[bookingID]
}

func (s *ReminderService) remind(b models.Booking) {
	service, err := s.store.GetService(b.ServiceID)
	serviceName := "your appointment"
	if err == nil && service != nil {
		serviceName = service.Name
	}

	body := fmt.Sprintf("Hi %s, a reminder about %s on %s.",
		b.ClientName, serviceName, b.StartTime.Format("Mon Jan 2 at 3:04 PM"))

	channel, sendErr := s.sms.Send(b.ClientPhone, body)

	msg, err := s.store.CreateMessage(&models.Message{
		Content: body,
		Channel: channel,
		Metadata: models.JSONB{
			"kind":       "booking_reminder",
			"booking_id": b.ID,
		},
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("booking", b.ID).Msg("failed to record reminder")
		return
	}
	if sendErr != nil {
		if _, err := s.store.UpdateMessageStatus(msg.ID, models.MessageStatusFailed); err != nil {
			s.logger.Error().Err(err).Int64("message", msg.ID).Msg("failed to mark reminder failed")
		}
		s.logger.Error().Err(sendErr).Int64("booking", b.ID).Msg("reminder send failed")
	}

	s.mu.Lock()
	s.reminded[b.ID] = true
	s.mu.Unlock()
}
