package models

// User represents a registered account.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	PasswordHash string `json:"-" gorm:"column:password;type:varchar(255);not null"` // Never serialized
}
