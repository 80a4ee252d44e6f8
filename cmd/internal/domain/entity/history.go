package entity

// HistoryEntry is one record in a patient's clinical history.
type HistoryEntry struct {
	ID          string `gorm:"primaryKey"`
	PatientDni  string `gorm:"not null;index"` // References: users(dni)
	Description string `gorm:"not null"`
	ImageURL    string
	CreatedAt   int64 `gorm:"not null"`
}
