package models

type Availability struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ProviderID  int64  `json:"providerId" gorm:"index;not null"`
	DayOfWeek   int    `json:"dayOfWeek" gorm:"not null"` // 0-6, Sunday-Saturday
	StartTime   string `json:"startTime" gorm:"not null"` // HH:MM
	EndTime     string `json:"endTime" gorm:"not null"`   // HH:MM
	IsAvailable bool   `json:"isAvailable"`
}

type AvailabilityUpdate struct {
	DayOfWeek   *int    `json:"dayOfWeek"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	IsAvailable *bool   `json:"isAvailable"`
}

func (u *AvailabilityUpdate) Apply(a *Availability) {
	if u.DayOfWeek != nil {
		a.DayOfWeek = *u.DayOfWeek
	}
	if u.StartTime != nil {
		a.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		a.EndTime = *u.EndTime
	}
	if u.IsAvailable != nil {
		a.IsAvailable = *u.IsAvailable
	}
}
