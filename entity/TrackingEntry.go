package entity

import (
	"gorm.io/gorm"
)

// TrackingEntry คือ audit log ของการเปลี่ยนสถานะ donation
// insert อย่างเดียว - ไม่มี update/delete path
type TrackingEntry struct {
	gorm.Model
	DonationID  uint   `gorm:"not null;index" json:"donationId"`
	Status      string `gorm:"not null" json:"status"`
	UpdatedByID uint   `gorm:"not null" json:"updatedById"`
	UpdatedBy   User   `json:"-"` // preload เฉพาะตอนต้องการชื่อ
	Notes       string `json:"notes,omitempty"`
}
