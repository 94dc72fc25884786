package entity

import (
	"time"

	"gorm.io/gorm"
)

type Donation struct {
	gorm.Model

	// Parties
	DonorID     uint  `gorm:"not null;index:idx_donation_donor_status" json:"donorId"`
	Donor       User  `json:"-"` // preload แยกเมื่อจำเป็น
	CharityID   *uint `gorm:"index:idx_donation_charity_status" json:"charityId,omitempty"`
	Charity     *User `json:"-"`
	VolunteerID *uint `gorm:"index" json:"volunteerId,omitempty"`
	Volunteer   *User `json:"-"`

	// Content
	FoodType    string  `gorm:"not null" json:"foodType"` // prepared | raw | packaged | other
	Quantity    float64 `gorm:"not null" json:"quantity"`
	Unit        string  `gorm:"not null" json:"unit"` // kg | items | servings
	Description string  `gorm:"not null" json:"description"`

	// Logistics
	PickupAddress string    `gorm:"not null" json:"pickupAddress"`
	PickupTime    time.Time `gorm:"not null" json:"pickupTime"`
	ExpiryTime    time.Time `gorm:"not null;index" json:"expiryTime"`

	// Lifecycle
	Status        string     `gorm:"not null;default:pending;index:idx_donation_donor_status;index:idx_donation_charity_status" json:"status"`
	AdminApproval bool       `gorm:"default:false" json:"adminApproval"`
	AdminNotes    string     `json:"adminNotes,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`

	// Feedback - ให้ได้ครั้งเดียว หลัง completed เท่านั้น
	RatingScore    *int   `json:"ratingScore,omitempty"`
	RatingFeedback string `json:"ratingFeedback,omitempty"`
	RatingGivenBy  *uint  `json:"ratingGivenBy,omitempty"`

	// audit log - append เท่านั้น ห้าม replace
	TrackingHistory []TrackingEntry `gorm:"foreignKey:DonationID" json:"-"`
	Images          []DonationImage `gorm:"foreignKey:DonationID" json:"-"`
	Tasks           []Task          `gorm:"foreignKey:DonationID" json:"-"`
}

// DonationImage เก็บ reference รูป (URL/path) ไม่เก็บเนื้อไฟล์
type DonationImage struct {
	gorm.Model
	DonationID uint   `gorm:"not null;index" json:"donationId"`
	URL        string `gorm:"not null" json:"url"`
}
