package services

import (
	"errors"
	"time"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

// Notifier push เหตุการณ์ lifecycle ไปหา dashboard ที่ subscribe อยู่
// (ws hub implement ตัวนี้) - nil ได้ ถ้าไม่เปิด realtime
type Notifier interface {
	DonationUpdated(donationID uint, status string)
}

type DonationService struct {
	DB   *gorm.DB
	Repo *repository.DonationRepository
	Feed Notifier
}

func NewDonationService(db *gorm.DB, repo *repository.DonationRepository) *DonationService {
	return &DonationService{DB: db, Repo: repo}
}

func (s *DonationService) notify(id uint, status string) {
	if s.Feed != nil {
		s.Feed.DonationUpdated(id, status)
	}
}

// ----- DTOs from Controller -----

type CreateDonationReq struct {
	FoodType      string    `json:"foodType" binding:"required"`
	Quantity      float64   `json:"quantity" binding:"required"`
	Unit          string    `json:"unit" binding:"required"`
	Description   string    `json:"description" binding:"required"`
	PickupAddress string    `json:"pickupAddress" binding:"required"`
	PickupTime    time.Time `json:"pickupTime" binding:"required"`
	ExpiryTime    time.Time `json:"expiryTime" binding:"required"`
	Images        []string  `json:"images"`
}

// ----- Create -----
// donor สร้าง donation → เริ่มที่ pending, adminApproval=false เสมอ
func (s *DonationService) Create(donorID uint, req *CreateDonationReq) (*entity.Donation, error) {
	if !entity.ValidFoodType(req.FoodType) {
		return nil, invalidField("foodType", "must be one of prepared, raw, packaged, other")
	}
	if req.Quantity <= 0 {
		return nil, invalidField("quantity", "must be positive")
	}
	if !entity.ValidUnit(req.Unit) {
		return nil, invalidField("unit", "must be one of kg, items, servings")
	}
	if req.Description == "" {
		return nil, invalidField("description", "must not be empty")
	}
	if req.ExpiryTime.Before(req.PickupTime) {
		return nil, invalidField("expiryTime", "must not be before pickupTime")
	}

	d := entity.Donation{
		DonorID:       donorID,
		FoodType:      req.FoodType,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		Description:   req.Description,
		PickupAddress: req.PickupAddress,
		PickupTime:    req.PickupTime,
		ExpiryTime:    req.ExpiryTime,
		Status:        entity.StatusPending,
		AdminApproval: false,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, &d); err != nil {
			return err
		}
		// การสร้างไม่นับเป็น transition - tracking เริ่ม append ตั้งแต่ approve
		for _, url := range req.Images {
			if err := tx.Create(&entity.DonationImage{DonationID: d.ID, URL: url}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	s.notify(d.ID, d.Status)
	return &d, nil
}

// ----- List & Detail -----

func (s *DonationService) List(f repository.DonationFilter) ([]entity.Donation, int64, error) {
	return s.Repo.List(f)
}

// รายละเอียด - เปิดให้เฉพาะคนที่เกี่ยวข้องกับ donation นี้ (หรือ admin)
func (s *DonationService) Detail(actorID uint, role string, id uint) (*entity.Donation, error) {
	d, err := s.Repo.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !isParty(d, actorID) && role != entity.RoleAdmin {
		// charity/volunteer ดูของ available ได้ (ยังไม่มีเจ้าภาพ)
		open := d.Status == entity.StatusApproved && d.CharityID == nil
		if !(open && (role == entity.RoleCharity || role == entity.RoleVolunteer)) {
			return nil, ErrUnauthorized
		}
	}
	return d, nil
}

func (s *DonationService) Tracking(actorID uint, role string, id uint) ([]entity.TrackingEntry, error) {
	if _, err := s.Detail(actorID, role, id); err != nil {
		return nil, err
	}
	return s.Repo.ListTracking(id)
}

// actor เป็น donor/charity/volunteer ของ donation นี้ไหม - เทียบ id ไม่ใช่ role
func isParty(d *entity.Donation, actorID uint) bool {
	if d.DonorID == actorID {
		return true
	}
	if d.CharityID != nil && *d.CharityID == actorID {
		return true
	}
	if d.VolunteerID != nil && *d.VolunteerID == actorID {
		return true
	}
	return false
}
