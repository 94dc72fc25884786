package repository

import (
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

type BusinessRepository struct {
	DB *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{DB: db}
}

func (r *BusinessRepository) Create(p *entity.BusinessProfile) error {
	return r.DB.Create(p).Error
}

func (r *BusinessRepository) FindByID(id uint) (*entity.BusinessProfile, error) {
	var p entity.BusinessProfile
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BusinessRepository) FindByUser(userID uint) (*entity.BusinessProfile, error) {
	var p entity.BusinessProfile
	if err := r.DB.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// กันสมัครซ้ำ: email หรือชื่อธุรกิจชนกับที่มีอยู่
func (r *BusinessRepository) ExistsByEmailOrName(email, name string) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.BusinessProfile{}).
		Where("email = ? OR business_name = ?", email, name).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *BusinessRepository) FindByStatus(status string) ([]entity.BusinessProfile, error) {
	var items []entity.BusinessProfile
	err := r.DB.Where("status = ?", status).Order("id DESC").Find(&items).Error
	return items, err
}

func (r *BusinessRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.BusinessProfile{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// อนุมัติ + mark user เป็น verified ใน transaction เดียว
func (r *BusinessRepository) Approve(p *entity.BusinessProfile, reviewerID uint, now time.Time) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.BusinessProfile{}).
			Where("id = ? AND status = ?", p.ID, entity.BusinessPending).
			Updates(map[string]any{
				"status":         entity.BusinessApproved,
				"reviewed_at":    now,
				"reviewed_by_id": reviewerID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&entity.User{}).
			Where("id = ?", p.UserID).
			Updates(map[string]any{
				"verification_status": "verified",
				"organization_name":   p.BusinessName,
			}).Error
	})
}

func (r *BusinessRepository) Reject(p *entity.BusinessProfile, reason string, reviewerID uint, now time.Time) error {
	res := r.DB.Model(&entity.BusinessProfile{}).
		Where("id = ? AND status = ?", p.ID, entity.BusinessPending).
		Updates(map[string]any{
			"status":         entity.BusinessRejected,
			"reviewed_at":    now,
			"reviewed_by_id": reviewerID,
			"reject_reason":  reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
