package storage

import "bookline-backend/models"

// Seed loads the sample catalogue into an empty store: six active
// services, four AI personas and the default settings. It runs through
// the regular create operations so ids and positions are assigned the
// same way as at runtime.
func Seed(s Storage) error {
	services := []models.Service{
		{
			Name:         "Classic Manicure",
			Description:  "A relaxed shape, buff and polish for natural nails.",
			Duration:     30,
			Price:        3500, // $35.00
			Active:       true,
			Position:     models.PositionAuto,
			BufferBefore: "0",
			BufferAfter:  "10",
		},
		{
			Name:         "Gel Manicure",
			Description:  "Long-wear gel colour cured under LED, chip-free for weeks.",
			Duration:     45,
			Price:        5500, // $55.00
			Active:       true,
			Position:     models.PositionAuto,
			BufferBefore: "10",
			BufferAfter:  "0",
		},
		{
			Name:         "Spa Pedicure",
			Description:  "Warm soak, exfoliation, massage and polish.",
			Duration:     60,
			Price:        7000, // $70.00
			Active:       true,
			Position:     models.PositionAuto,
			BufferBefore: "0",
			BufferAfter:  "15",
		},
		{
			Name:         "Full Set Acrylics",
			Description:  "Sculpted acrylic extensions finished in the shape and length you choose.",
			Duration:     90,
			Price:        9500, // $95.00
			Active:       true,
			Position:     models.PositionAuto,
			BufferBefore: "15",
			BufferAfter:  "15",
		},
		{
			Name:         "Nail Art Session",
			Description:  "Hand-painted designs, chrome, foils or stones on a fresh set.",
			Duration:     75,
			Price:        8500, // $85.00
			Active:       true,
			Position:     models.PositionAuto,
			BufferBefore: "15",
			BufferAfter:  "30",
		},
		{
			Name:         "Polish Change",
			Description:  "A quick colour swap on natural nails between full appointments.",
			Duration:     15,
			Price:        2000, // $20.00
			Active:       true,
			Position:     models.PositionAuto,
			BufferBefore: "0",
			BufferAfter:  "0",
		},
	}
	for i := range services {
		if _, err := s.CreateService(&services[i]); err != nil {
			return err
		}
	}

	personas := []models.AIPersona{
		{
			Name:         "Customer Service",
			Description:  "General inquiries and bookings",
			SystemPrompt: "You are a helpful customer service assistant for a booking service. Help answer questions about services and guide users through the booking process.",
			Icon:         "robot",
			IconColor:    "blue",
			Active:       true,
		},
		{
			Name:         "Booking Assistant",
			Description:  "Availability and appointment changes",
			SystemPrompt: "You are a booking assistant. Help clients find open slots, reschedule and cancel appointments, and explain deposits and buffer times.",
			Icon:         "calendar",
			IconColor:    "purple",
			Active:       true,
		},
		{
			Name:         "Style Consultant",
			Description:  "Service and design recommendations",
			SystemPrompt: "You are a friendly style consultant. Recommend services, shapes and designs that match what the client describes.",
			Icon:         "heart",
			IconColor:    "pink",
			Active:       true,
		},
		{
			Name:         "Aftercare Advisor",
			Description:  "Care tips after an appointment",
			SystemPrompt: "You give practical aftercare advice so results last longer. Keep answers short and concrete.",
			Icon:         "sparkles",
			IconColor:    "green",
			Active:       true,
		},
	}
	for i := range personas {
		if _, err := s.CreateAIPersona(&personas[i]); err != nil {
			return err
		}
	}

	settings := []models.AISetting{
		{
			Key:         models.SettingAIMode,
			Value:       false,
			Description: "Whether AI mode is enabled",
		},
		{
			Key:         models.SettingTrainingMode,
			Value:       false,
			Description: "Whether training mode is enabled",
		},
		{
			Key: models.SettingTrainingSettings,
			Value: map[string]interface{}{
				"max_turns":         20,
				"message_delay_min": 1000,
				"message_delay_max": 3000,
				"active_personas":   []int64{1, 2},
			},
			Description: "Settings for training mode",
		},
		{
			Key:         models.SettingReminderHours,
			Value:       24,
			Description: "How many hours before the start time booking reminders are sent",
		},
		{
			Key:         models.SettingMaxAdvanceBookingDays,
			Value:       60,
			Description: "How far ahead clients may book",
		},
	}
	for i := range settings {
		if _, err := s.CreateAISetting(&settings[i]); err != nil {
			return err
		}
	}

	return nil
}
