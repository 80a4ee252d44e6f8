package entity

// Appointment is a booked slot. Date is the slot start; the slot is
// always one hour wide, so no end time is stored.
type Appointment struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	PatientName  string `gorm:"not null"`
	PatientDni   string `gorm:"not null;index"` // References: users(dni)
	PatientEmail string
	Specialty    string `gorm:"not null"`
	Date         int64  `gorm:"not null;index"` // Slot start, epoch millis
	Background   string
	Color        string
	IsDeleted    bool  `gorm:"not null"`
	CreatedAt    int64 `gorm:"not null"`
	UpdatedAt    int64 `gorm:"not null"`
}
