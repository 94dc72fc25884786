package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(t *entity.Task) error {
	return r.DB.Create(t).Error
}

func (r *TaskRepository) Get(id uint) (*entity.Task, error) {
	var t entity.Task
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

type TaskFilter struct {
	DonationID  *uint
	VolunteerID *uint
	Status      string
	OpenOnly    bool
	Limit       int
}

func (r *TaskRepository) List(f TaskFilter) ([]entity.Task, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	q := r.DB.Model(&entity.Task{})
	if f.DonationID != nil {
		q = q.Where("donation_id = ?", *f.DonationID)
	}
	if f.VolunteerID != nil {
		q = q.Where("volunteer_id = ?", *f.VolunteerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.OpenOnly {
		q = q.Where("status = ? AND volunteer_id IS NULL", entity.TaskOpen)
	}

	var items []entity.Task
	err := q.Order("scheduled_time ASC").Limit(f.Limit).Find(&items).Error
	return items, err
}

// Volunteer claim งาน - first-claim-wins เหมือนฝั่ง donation
func (r *TaskRepository) ClaimGuard(tx *gorm.DB, id, volunteerID uint) (int64, error) {
	res := tx.Model(&entity.Task{}).
		Where("id = ? AND status = ? AND volunteer_id IS NULL", id, entity.TaskOpen).
		Updates(map[string]any{"status": entity.TaskAssigned, "volunteer_id": volunteerID})
	return res.RowsAffected, res.Error
}

// เปลี่ยน status (มี guard) - assigned→in_progress, in_progress→completed ฯลฯ
func (r *TaskRepository) UpdateStatusGuard(tx *gorm.DB, id uint, from, to string, extra map[string]any) (int64, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	res := tx.Model(&entity.Task{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}
