package repository

import (
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

type DonationRepository struct {
	DB *gorm.DB
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{DB: db}
}

// ---------------- Donations (CRUD หลัก) ----------------

// POST /donations → สร้าง donation
func (r *DonationRepository) Create(tx *gorm.DB, d *entity.Donation) error {
	return tx.Create(d).Error
}

func (r *DonationRepository) Get(id uint) (*entity.Donation, error) {
	var d entity.Donation
	if err := r.DB.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// GET /donations → list ตาม filter ของแต่ละ role
type DonationFilter struct {
	DonorID     *uint
	CharityID   *uint
	VolunteerID *uint
	Status      string
	// approved + ยังไม่มี charity (หน้า "available" ของ charity/volunteer)
	AvailableOnly bool
	Page          int
	Limit         int
}

func (r *DonationRepository) List(f DonationFilter) ([]entity.Donation, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	offset := (f.Page - 1) * f.Limit

	q := r.DB.Model(&entity.Donation{})
	if f.DonorID != nil {
		q = q.Where("donor_id = ?", *f.DonorID)
	}
	if f.CharityID != nil {
		q = q.Where("charity_id = ?", *f.CharityID)
	}
	if f.VolunteerID != nil {
		q = q.Where("volunteer_id = ?", *f.VolunteerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.AvailableOnly {
		q = q.Where("status = ? AND charity_id IS NULL", entity.StatusApproved)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.Donation
	err := q.Order("id DESC").Limit(f.Limit).Offset(offset).Find(&items).Error
	return items, total, err
}

// ---------------- Guarded updates ----------------
// ทุกการเปลี่ยน status ต้องผ่าน guard: WHERE เช็ค state เดิม
// RowsAffected == 0 แปลว่าแพ้ race หรือ state ไม่ตรง

// PATCH status → อัปเดตสถานะ (มี guard) พร้อม field ข้างเคียง
func (r *DonationRepository) UpdateStatusGuard(tx *gorm.DB, id uint, from, to string, extra map[string]any) (int64, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	res := tx.Model(&entity.Donation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// Claim: set charity เฉพาะตอนที่ยังว่าง - first-claim-wins
// conditional update ที่ชั้น store ไม่ใช่ check-then-write ที่ caller
func (r *DonationRepository) ClaimGuard(tx *gorm.DB, id, charityID uint) (int64, error) {
	res := tx.Model(&entity.Donation{}).
		Where("id = ? AND status = ? AND charity_id IS NULL", id, entity.StatusApproved).
		Update("charity_id", charityID)
	return res.RowsAffected, res.Error
}

// Volunteer เริ่มงาน: approved → in_progress พร้อม assign ตัวเอง
// ถ้ามี volunteer อยู่แล้ว ต้องเป็นคนเดิมเท่านั้น
func (r *DonationRepository) StartDeliveryGuard(tx *gorm.DB, id, volunteerID uint) (int64, error) {
	res := tx.Model(&entity.Donation{}).
		Where("id = ? AND status = ? AND (volunteer_id IS NULL OR volunteer_id = ?)",
			id, entity.StatusApproved, volunteerID).
		Updates(map[string]any{"status": entity.StatusInProgress, "volunteer_id": volunteerID})
	return res.RowsAffected, res.Error
}

// Rating: เขียนได้ครั้งเดียว เฉพาะ donation ที่ completed และ charity ตรงตัว
func (r *DonationRepository) RateGuard(tx *gorm.DB, id, charityID uint, score int, feedback string) (int64, error) {
	res := tx.Model(&entity.Donation{}).
		Where("id = ? AND status = ? AND charity_id = ? AND rating_score IS NULL",
			id, entity.StatusCompleted, charityID).
		Updates(map[string]any{
			"rating_score":    score,
			"rating_feedback": feedback,
			"rating_given_by": charityID,
		})
	return res.RowsAffected, res.Error
}

// ---------------- Tracking history ----------------
// append เท่านั้น - repository ไม่มี method replace/truncate

func (r *DonationRepository) AppendTracking(tx *gorm.DB, e *entity.TrackingEntry) error {
	return tx.Create(e).Error
}

func (r *DonationRepository) ListTracking(donationID uint) ([]entity.TrackingEntry, error) {
	var entries []entity.TrackingEntry
	err := r.DB.Where("donation_id = ?", donationID).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

// ---------------- Expiry sweep ----------------

// donation ที่เลย expiry แล้วแต่ยังไม่จบ lifecycle
func (r *DonationRepository) FindExpirable(tx *gorm.DB, now time.Time) ([]entity.Donation, error) {
	var due []entity.Donation
	err := tx.Where("status IN ? AND expiry_time <= ?",
		[]string{entity.StatusPending, entity.StatusApproved}, now).
		Find(&due).Error
	return due, err
}

// ---------------- Dashboard counts ----------------
// derived ล้วน ๆ - คำนวณใหม่ทุกครั้งที่อ่าน

type DashboardCounts struct {
	Pending   int64 `json:"pending"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Available int64 `json:"available,omitempty"`
}

func (r *DonationRepository) CountsForDonor(donorID uint) (DashboardCounts, error) {
	var out DashboardCounts
	base := func() *gorm.DB { return r.DB.Model(&entity.Donation{}).Where("donor_id = ?", donorID) }
	if err := base().Where("status = ?", entity.StatusPending).Count(&out.Pending).Error; err != nil {
		return out, err
	}
	if err := base().Where("status IN ?",
		[]string{entity.StatusApproved, entity.StatusInProgress}).Count(&out.Active).Error; err != nil {
		return out, err
	}
	err := base().Where("status = ?", entity.StatusCompleted).Count(&out.Completed).Error
	return out, err
}

func (r *DonationRepository) CountsForCharity(charityID uint) (DashboardCounts, error) {
	var out DashboardCounts
	base := func() *gorm.DB { return r.DB.Model(&entity.Donation{}).Where("charity_id = ?", charityID) }
	if err := base().Where("status = ?", entity.StatusApproved).Count(&out.Pending).Error; err != nil {
		return out, err
	}
	if err := base().Where("status = ?", entity.StatusInProgress).Count(&out.Active).Error; err != nil {
		return out, err
	}
	if err := base().Where("status = ?", entity.StatusCompleted).Count(&out.Completed).Error; err != nil {
		return out, err
	}
	err := r.DB.Model(&entity.Donation{}).
		Where("status = ? AND charity_id IS NULL", entity.StatusApproved).
		Count(&out.Available).Error
	return out, err
}

func (r *DonationRepository) CountsForVolunteer(volunteerID uint) (DashboardCounts, error) {
	var out DashboardCounts
	base := func() *gorm.DB { return r.DB.Model(&entity.Donation{}).Where("volunteer_id = ?", volunteerID) }
	if err := base().Where("status = ?", entity.StatusInProgress).Count(&out.Active).Error; err != nil {
		return out, err
	}
	if err := base().Where("status = ?", entity.StatusCompleted).Count(&out.Completed).Error; err != nil {
		return out, err
	}
	// งานที่รับได้ = approved และยังไม่มี volunteer
	err := r.DB.Model(&entity.Donation{}).
		Where("status = ? AND volunteer_id IS NULL", entity.StatusApproved).
		Count(&out.Available).Error
	return out, err
}

func (r *DonationRepository) CountDonationsSince(since time.Time) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Donation{}).Where("created_at >= ?", since).Count(&n).Error
	return n, err
}
