package entity

type User struct {
	ID            int    `gorm:"primaryKey"`
	SubUUID       string `gorm:"not null;uniqueIndex"`
	Dni           string `gorm:"not null;uniqueIndex"`
	FullName      string `gorm:"not null"`
	Email         string `gorm:"not null;uniqueIndex"`
	EmailVerified bool   `gorm:"not null"`
	IsAdmin       bool   `gorm:"not null"`
	CreatedAt     int64  `gorm:"not null"`
	UpdatedAt     int64  `gorm:"not null"`
}
