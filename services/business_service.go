package services

import (
	"errors"
	"strings"
	"time"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

type BusinessService struct {
	Repo *repository.BusinessRepository
}

func NewBusinessService(repo *repository.BusinessRepository) *BusinessService {
	return &BusinessService{Repo: repo}
}

type RegisterBusinessReq struct {
	BusinessType string `json:"businessType" binding:"required,oneof=restaurant store"`
	BusinessName string `json:"businessName" binding:"required"`
	ContactName  string `json:"contactName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required"`
	Address      string `json:"address" binding:"required"`
	PickupWindow string `json:"pickupWindow" binding:"required"`
	Frequency    string `json:"frequency" binding:"required,oneof=daily weekly monthly one-time"`
}

// ยื่นสมัคร business profile → เริ่มที่ pending รอ admin
func (s *BusinessService) Register(userID uint, req *RegisterBusinessReq) (*entity.BusinessProfile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// กันสมัครซ้ำ (email หรือชื่อธุรกิจ)
	exists, err := s.Repo.ExistsByEmailOrName(email, req.BusinessName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	p := entity.BusinessProfile{
		UserID:       userID,
		BusinessType: req.BusinessType,
		BusinessName: req.BusinessName,
		ContactName:  req.ContactName,
		Email:        email,
		Phone:        req.Phone,
		Address:      req.Address,
		PickupWindow: req.PickupWindow,
		Frequency:    req.Frequency,
		Status:       entity.BusinessPending,
	}
	if err := s.Repo.Create(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *BusinessService) Profile(userID uint) (*entity.BusinessProfile, error) {
	p, err := s.Repo.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List applications by status (admin)
func (s *BusinessService) List(status string) ([]entity.BusinessProfile, error) {
	if status == "" {
		status = entity.BusinessPending
	}
	return s.Repo.FindByStatus(status)
}

// Approve: pending → approved แล้ว mark user เป็น verified
func (s *BusinessService) Approve(adminID, profileID uint) (*entity.BusinessProfile, error) {
	p, err := s.Repo.FindByID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.Status != entity.BusinessPending {
		return nil, ErrConflict
	}

	if err := s.Repo.Approve(p, adminID, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConflict // โดนตัดหน้า
		}
		return nil, err
	}
	return s.Repo.FindByID(profileID)
}

func (s *BusinessService) Reject(adminID, profileID uint, reason string) error {
	if reason == "" {
		return invalidField("reason", "is required")
	}
	p, err := s.Repo.FindByID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if p.Status != entity.BusinessPending {
		return ErrConflict
	}

	if err := s.Repo.Reject(p, reason, adminID, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConflict
		}
		return err
	}
	return nil
}
