package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"` // ปลอดภัย
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `gorm:"index;not null;default:donor" json:"role"`

	// ข้อมูลองค์กร (charity / ร้านที่บริจาค)
	OrganizationName   string `json:"organizationName,omitempty"`
	OrganizationType   string `gorm:"default:other" json:"organizationType"` // charity | restaurant | grocery | other
	VerificationStatus string `gorm:"default:pending" json:"verificationStatus"`
	IsActive           bool   `gorm:"default:true" json:"isActive"`

	// Relations - preload เฉพาะตอนจำเป็น
	DonationsGiven    []Donation       `gorm:"foreignKey:DonorID" json:"-"`
	DonationsReceived []Donation       `gorm:"foreignKey:CharityID" json:"-"`
	Deliveries        []Donation       `gorm:"foreignKey:VolunteerID" json:"-"`
	BusinessProfile   *BusinessProfile `gorm:"foreignKey:UserID" json:"-"`
	Tasks             []Task           `gorm:"foreignKey:VolunteerID" json:"-"`
}
