package models

// PositionAuto marks a create call that did not supply an explicit
// position; the store assigns max(existing)+1, or 0 for an empty
// collection.
const PositionAuto = -1

type Service struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"not null"`
	Description  string `json:"description"`
	Duration     int    `json:"duration" gorm:"not null"` // in minutes
	Price        int64  `json:"price" gorm:"not null"`    // in cents
	Active       bool   `json:"active"`
	Position     int    `json:"position" gorm:"default:0"`       // display order, lower sorts first
	Photo        string `json:"photo"`                           // base64 or URL
	BufferBefore string `json:"bufferBefore" gorm:"default:'0'"` // minutes, string-encoded
	BufferAfter  string `json:"bufferAfter" gorm:"default:'0'"`  // minutes, string-encoded
}

// ServiceUpdate carries a partial update; nil fields are left untouched.
type ServiceUpdate struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Duration     *int    `json:"duration"`
	Price        *int64  `json:"price"`
	Active       *bool   `json:"active"`
	Position     *int    `json:"position"`
	Photo        *string `json:"photo"`
	BufferBefore *string `json:"bufferBefore"`
	BufferAfter  *string `json:"bufferAfter"`
}

func (u *ServiceUpdate) Apply(s *Service) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Description != nil {
		s.Description = *u.Description
	}
	if u.Duration != nil {
		s.Duration = *u.Duration
	}
	if u.Price != nil {
		s.Price = *u.Price
	}
	if u.Active != nil {
		s.Active = *u.Active
	}
	if u.Position != nil {
		s.Position = *u.Position
	}
	if u.Photo != nil {
		s.Photo = *u.Photo
	}
	if u.BufferBefore != nil {
		s.BufferBefore = *u.BufferBefore
	}
	if u.BufferAfter != nil {
		s.BufferAfter = *u.BufferAfter
	}
}
