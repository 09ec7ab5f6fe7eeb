package models

type User struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Role     string `json:"role" gorm:"default:'client'"` // 'client' or 'provider'
}
