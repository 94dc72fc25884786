package entity

import (
	"time"

	"gorm.io/gorm"
)

// BusinessProfile โปรไฟล์ธุรกิจของ donor (ร้านอาหาร/ร้านค้า)
// มี approval workflow ของตัวเอง แยกจาก donation
type BusinessProfile struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex" json:"userId"`
	User   User `json:"-"`

	BusinessType string `gorm:"not null" json:"businessType"` // restaurant | store
	BusinessName string `gorm:"not null;uniqueIndex" json:"businessName"`
	ContactName  string `gorm:"not null" json:"contactName"`
	Email        string `gorm:"not null" json:"email"`
	Phone        string `gorm:"not null" json:"phone"`
	Address      string `gorm:"not null" json:"address"`

	// ช่วงเวลาที่สะดวกให้มารับของ + ความถี่
	PickupWindow string `gorm:"not null" json:"pickupWindow"`
	Frequency    string `gorm:"not null" json:"frequency"` // daily | weekly | monthly | one-time

	Status       string     `gorm:"not null;default:pending;index" json:"status"` // pending | approved | rejected
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	ReviewedByID *uint      `json:"reviewedById,omitempty"`
	RejectReason *string    `json:"rejectReason,omitempty"`
}
