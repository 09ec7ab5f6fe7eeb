package storage

import (
	"testing"
	"time"

	"bookline-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupGormStorage(t *testing.T) *GormStorage {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	store, err := NewGormStorage(db)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return store
}

func TestGormServicePositionAuto(t *testing.T) {
	store := setupGormStorage(t)

	first, err := store.CreateService(&models.Service{Name: "First", Duration: 30, Price: 3000, Active: true, Position: models.PositionAuto})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)

	second, err := store.CreateService(&models.Service{Name: "Second", Duration: 30, Price: 3000, Active: true, Position: models.PositionAuto})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)
}

func TestGormServicesOrderAndFilter(t *testing.T) {
	store := setupGormStorage(t)

	a, _ := store.CreateService(&models.Service{Name: "A", Duration: 30, Price: 3000, Active: true, Position: models.PositionAuto})
	b, _ := store.CreateService(&models.Service{Name: "B", Duration: 30, Price: 3000, Active: false, Position: models.PositionAuto})
	c, _ := store.CreateService(&models.Service{Name: "C", Duration: 30, Price: 3000, Active: true, Position: models.PositionAuto})

	updated, err := store.UpdateServicesOrder([]int64{c.ID, a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, updated, 3)

	services, err := store.GetServices()
	require.NoError(t, err)
	require.Len(t, services, 3)
	assert.Equal(t, "C", services[0].Name)
	assert.Equal(t, "A", services[1].Name)
	assert.Equal(t, "B", services[2].Name)

	active, err := store.GetActiveServices()
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "C", active[0].Name)
}

func TestGormPersistsFalseBooleans(t *testing.T) {
	store := setupGormStorage(t)

	service, err := store.CreateService(&models.Service{Name: "Hidden", Duration: 30, Price: 3000, Active: false, Position: models.PositionAuto})
	require.NoError(t, err)
	assert.False(t, service.Active)

	reloaded, err := store.GetService(service.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.False(t, reloaded.Active)

	active, err := store.GetActiveServices()
	require.NoError(t, err)
	assert.Empty(t, active)

	addon, err := store.CreateServiceAddon(&models.ServiceAddon{Name: "Plain", Price: 500, Active: false, DisplayOnBookingPage: false, Position: models.PositionAuto})
	require.NoError(t, err)
	reloadedAddon, err := store.GetServiceAddon(addon.ID)
	require.NoError(t, err)
	require.NotNil(t, reloadedAddon)
	assert.False(t, reloadedAddon.Active)
	assert.False(t, reloadedAddon.DisplayOnBookingPage)

	persona, err := store.CreateAIPersona(&models.AIPersona{Name: "Retired", SystemPrompt: "help", Active: false})
	require.NoError(t, err)
	reloadedPersona, err := store.GetAIPersona(persona.ID)
	require.NoError(t, err)
	require.NotNil(t, reloadedPersona)
	assert.False(t, reloadedPersona.Active)

	window, err := store.CreateAvailability(&models.Availability{ProviderID: 1, DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00", IsAvailable: false})
	require.NoError(t, err)
	windows, err := store.GetAvailabilityByProvider(1)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, window.ID, windows[0].ID)
	assert.False(t, windows[0].IsAvailable)
}

func TestGormCreateBookingDerivesEndTime(t *testing.T) {
	store := setupGormStorage(t)
	service, err := store.CreateService(&models.Service{Name: "Spa Pedicure", Duration: 60, Price: 7000, Active: true, Position: models.PositionAuto})
	require.NoError(t, err)

	start := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	booking, err := store.CreateBooking(&models.Booking{
		ServiceID:   service.ID,
		ClientName:  "Jamie",
		ClientPhone: "+15551234567",
		StartTime:   start,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, start.Add(60*time.Minute), booking.EndTime)
}

func TestGormCreateBookingUnknownService(t *testing.T) {
	store := setupGormStorage(t)

	_, err := store.CreateBooking(&models.Booking{
		ServiceID:   99,
		ClientName:  "Jamie",
		ClientPhone: "+15551234567",
		StartTime:   time.Now(),
	})
	require.ErrorIs(t, err, ErrServiceNotFound)

	bookings, err := store.GetBookings()
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestGormUpdateBookingStatus(t *testing.T) {
	store := setupGormStorage(t)
	service, _ := store.CreateService(&models.Service{Name: "S", Duration: 30, Price: 3000, Active: true, Position: models.PositionAuto})
	booking, _ := store.CreateBooking(&models.Booking{ServiceID: service.ID, ClientName: "Jamie", ClientPhone: "+15551234567", StartTime: time.Now()})

	_, err := store.UpdateBookingStatus(booking.ID, "archived")
	require.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := store.UpdateBookingStatus(booking.ID, models.BookingStatusCancelled)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, models.BookingStatusCancelled, updated.Status)

	missing, err := store.UpdateBookingStatus(99, models.BookingStatusConfirmed)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGormUserUniqueUsername(t *testing.T) {
	store := setupGormStorage(t)

	user, err := store.CreateUser(&models.User{Username: "jamie", Password: "hash"})
	require.NoError(t, err)
	assert.Equal(t, "client", user.Role)

	_, err = store.CreateUser(&models.User{Username: "jamie", Password: "other"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	found, err := store.GetUserByUsername("jamie")
	require.NoError(t, err)
	require.NotNil(t, found)

	missing, err := store.GetUserByUsername("nobody")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGormAISettingUpsert(t *testing.T) {
	store := setupGormStorage(t)

	created, err := store.UpsertAISetting("ai_mode", true, "responder toggle")
	require.NoError(t, err)
	assert.Equal(t, "responder toggle", created.Description)

	updated, err := store.UpsertAISetting("ai_mode", false, "")
	require.NoError(t, err)
	assert.Equal(t, false, updated.Value)
	assert.Equal(t, "responder toggle", updated.Description)

	_, err = store.CreateAISetting(&models.AISetting{Key: "ai_mode", Value: true})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGormSeedIfEmpty(t *testing.T) {
	store := setupGormStorage(t)

	require.NoError(t, store.SeedIfEmpty())

	services, err := store.GetActiveServices()
	require.NoError(t, err)
	assert.Len(t, services, 6)

	personas, err := store.GetAIPersonas()
	require.NoError(t, err)
	assert.Len(t, personas, 4)

	// A second call is a no-op.
	require.NoError(t, store.SeedIfEmpty())
	services, _ = store.GetActiveServices()
	assert.Len(t, services, 6)
}
