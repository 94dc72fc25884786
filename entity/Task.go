package entity

import (
	"time"

	"gorm.io/gorm"
)

// Task งานย่อยของ volunteer (รับของ/ส่งของ/ตรวจสอบ)
// มี status machine ของตัวเอง แยกจาก Donation.Status
type Task struct {
	gorm.Model
	DonationID uint     `gorm:"not null;index:idx_task_donation_status" json:"donationId"`
	Donation   Donation `json:"-"`

	VolunteerID *uint `gorm:"index" json:"volunteerId,omitempty"`
	Volunteer   *User `json:"-"`
	CreatedByID uint  `gorm:"not null" json:"createdById"`

	Type     string `gorm:"not null" json:"type"`                                          // pickup | delivery | verification | other
	Status   string `gorm:"not null;default:open;index:idx_task_donation_status" json:"status"` // open | assigned | in_progress | completed | cancelled
	Priority string `gorm:"not null;default:medium" json:"priority"`                       // low | medium | high | urgent

	Description       string    `gorm:"not null" json:"description"`
	Location          string    `gorm:"not null" json:"location"`
	ScheduledTime     time.Time `gorm:"not null;index" json:"scheduledTime"`
	EstimatedDuration int       `gorm:"not null" json:"estimatedDuration"` // นาที
	CompletionNotes   string    `json:"completionNotes,omitempty"`
}
