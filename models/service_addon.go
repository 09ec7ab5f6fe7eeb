package models

type ServiceAddon struct {
	ID                   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name                 string `json:"name" gorm:"not null"`
	Description          string `json:"description"`
	Price                int64  `json:"price" gorm:"not null"` // in cents
	Duration             int    `json:"duration"`              // additional minutes
	Photo                string `json:"photo"`
	Active               bool   `json:"active"`
	DisplayOnBookingPage bool   `json:"displayOnBookingPage"`
	AddPriceToDeposit    bool   `json:"addPriceToDeposit"`
	Position             int    `json:"position" gorm:"default:0"`
}

type ServiceAddonUpdate struct {
	Name                 *string `json:"name"`
	Description          *string `json:"description"`
	Price                *int64  `json:"price"`
	Duration             *int    `json:"duration"`
	Photo                *string `json:"photo"`
	Active               *bool   `json:"active"`
	DisplayOnBookingPage *bool   `json:"displayOnBookingPage"`
	AddPriceToDeposit    *bool   `json:"addPriceToDeposit"`
	Position             *int    `json:"position"`
}

func (u *ServiceAddonUpdate) Apply(a *ServiceAddon) {
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Description != nil {
		a.Description = *u.Description
	}
	if u.Price != nil {
		a.Price = *u.Price
	}
	if u.Duration != nil {
		a.Duration = *u.Duration
	}
	if u.Photo != nil {
		a.Photo = *u.Photo
	}
	if u.Active != nil {
		a.Active = *u.Active
	}
	if u.DisplayOnBookingPage != nil {
		a.DisplayOnBookingPage = *u.DisplayOnBookingPage
	}
	if u.AddPriceToDeposit != nil {
		a.AddPriceToDeposit = *u.AddPriceToDeposit
	}
	if u.Position != nil {
		a.Position = *u.Position
	}
}
