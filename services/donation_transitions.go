package services

import (
	"errors"
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

// Lifecycle Manager - ทางเดียวที่ status/assignment ของ donation เปลี่ยนได้
// ทุก transition: guard update + append tracking ใน transaction เดียว

func (s *DonationService) load(id uint) (*entity.Donation, error) {
	d, err := s.Repo.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// แยกว่า guard ล้มเพราะ state ไม่ตรง หรือแพ้ race
func (s *DonationService) guardFailed(id uint, from, to, role string) error {
	d, err := s.Repo.Get(id)
	if err != nil {
		return ErrNotFound
	}
	if d.Status != from {
		return &InvalidTransitionError{From: d.Status, To: to, Role: role}
	}
	return ErrConflict
}

// ----- Admin actions -----

// pending → approved (admin เท่านั้น)
func (s *DonationService) Approve(adminID, donationID uint, notes string) error {
	if _, err := s.load(donationID); err != nil {
		return err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		extra := map[string]any{"admin_approval": true}
		if notes != "" {
			extra["admin_notes"] = notes
		}
		affected, err := s.Repo.UpdateStatusGuard(tx, donationID,
			entity.StatusPending, entity.StatusApproved, extra)
		if err != nil {
			return err
		}
		if affected == 0 {
			return s.guardFailed(donationID, entity.StatusPending, entity.StatusApproved, entity.RoleAdmin)
		}
		return s.Repo.AppendTracking(tx, &entity.TrackingEntry{
			DonationID:  donationID,
			Status:      entity.StatusApproved,
			UpdatedByID: adminID,
			Notes:       notes,
		})
	})
	if err != nil {
		return classify(err)
	}

	s.notify(donationID, entity.StatusApproved)
	return nil
}

// ----- Donor / Admin actions -----

// pending|approved → cancelled (donor เจ้าของ หรือ admin)
func (s *DonationService) Cancel(actorID uint, role string, donationID uint, notes string) error {
	d, err := s.load(donationID)
	if err != nil {
		return err
	}
	if role != entity.RoleAdmin && d.DonorID != actorID {
		return ErrUnauthorized
	}
	if !entity.CanTransition(d.Status, entity.StatusCancelled) {
		return &InvalidTransitionError{From: d.Status, To: entity.StatusCancelled, Role: role}
	}
	from := d.Status

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		extra := map[string]any{}
		if notes != "" {
			extra["admin_notes"] = notes
		}
		affected, err := s.Repo.UpdateStatusGuard(tx, donationID, from, entity.StatusCancelled, extra)
		if err != nil {
			return err
		}
		if affected == 0 {
			return s.guardFailed(donationID, from, entity.StatusCancelled, role)
		}
		return s.Repo.AppendTracking(tx, &entity.TrackingEntry{
			DonationID:  donationID,
			Status:      entity.StatusCancelled,
			UpdatedByID: actorID,
			Notes:       notes,
		})
	})
	if err != nil {
		return classify(err)
	}

	s.notify(donationID, entity.StatusCancelled)
	return nil
}

// ----- Charity actions -----

// Claim: charity จองเป็นผู้รับของ donation ที่ approved และยังว่าง
// first-claim-wins - คนแพ้ race ได้ ErrConflict กลับไป
func (s *DonationService) Claim(charityID, donationID uint) error {
	d, err := s.load(donationID)
	if err != nil {
		return err
	}
	if d.CharityID != nil {
		// มีเจ้าภาพแล้ว (รวมถึงตัวเองจองซ้ำ) - caller ไป re-fetch เอา state ใหม่
		return ErrConflict
	}
	if d.Status != entity.StatusApproved {
		return &InvalidTransitionError{From: d.Status, To: entity.StatusApproved, Role: entity.RoleCharity}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.ClaimGuard(tx, donationID, charityID)
		if err != nil {
			return err
		}
		if affected == 0 {
			// แพ้ race หรือ state เปลี่ยนไปแล้ว
			cur, gerr := s.Repo.Get(donationID)
			if gerr != nil {
				return ErrNotFound
			}
			if cur.Status != entity.StatusApproved {
				return &InvalidTransitionError{From: cur.Status, To: entity.StatusApproved, Role: entity.RoleCharity}
			}
			return ErrConflict
		}
		return s.Repo.AppendTracking(tx, &entity.TrackingEntry{
			DonationID:  donationID,
			Status:      entity.StatusApproved,
			UpdatedByID: charityID,
			Notes:       "claimed by charity",
		})
	})
	if err != nil {
		return classify(err)
	}

	s.notify(donationID, entity.StatusApproved)
	return nil
}

// ----- Volunteer actions -----

// approved → in_progress: volunteer เริ่มไปรับของ
// assign ตัวเองตอน transition นี้เท่านั้น - ถ้ามี volunteer เดิมต้องเป็นคนเดียวกัน
func (s *DonationService) StartDelivery(volunteerID, donationID uint) error {
	d, err := s.load(donationID)
	if err != nil {
		return err
	}
	if d.VolunteerID != nil && *d.VolunteerID != volunteerID {
		return ErrUnauthorized
	}
	if d.Status != entity.StatusApproved {
		return &InvalidTransitionError{From: d.Status, To: entity.StatusInProgress, Role: entity.RoleVolunteer}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.StartDeliveryGuard(tx, donationID, volunteerID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return s.guardFailed(donationID, entity.StatusApproved, entity.StatusInProgress, entity.RoleVolunteer)
		}
		return s.Repo.AppendTracking(tx, &entity.TrackingEntry{
			DonationID:  donationID,
			Status:      entity.StatusInProgress,
			UpdatedByID: volunteerID,
			Notes:       "pickup started",
		})
	})
	if err != nil {
		return classify(err)
	}

	s.notify(donationID, entity.StatusInProgress)
	return nil
}

// in_progress → completed: volunteer ที่ assigned หรือ charity ที่ assigned (หรือ admin)
func (s *DonationService) Complete(actorID uint, role string, donationID uint, notes string) error {
	d, err := s.load(donationID)
	if err != nil {
		return err
	}
	assignedVolunteer := d.VolunteerID != nil && *d.VolunteerID == actorID
	assignedCharity := d.CharityID != nil && *d.CharityID == actorID
	if role != entity.RoleAdmin && !assignedVolunteer && !assignedCharity {
		return ErrUnauthorized
	}
	if d.Status != entity.StatusInProgress {
		return &InvalidTransitionError{From: d.Status, To: entity.StatusCompleted, Role: role}
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, donationID,
			entity.StatusInProgress, entity.StatusCompleted,
			map[string]any{"completed_at": now})
		if err != nil {
			return err
		}
		if affected == 0 {
			return s.guardFailed(donationID, entity.StatusInProgress, entity.StatusCompleted, role)
		}
		return s.Repo.AppendTracking(tx, &entity.TrackingEntry{
			DonationID:  donationID,
			Status:      entity.StatusCompleted,
			UpdatedByID: actorID,
			Notes:       notes,
		})
	})
	if err != nil {
		return classify(err)
	}

	s.notify(donationID, entity.StatusCompleted)
	return nil
}

// ----- Rating -----

// ให้คะแนนได้เฉพาะ charity ที่รับของ, donation ต้อง completed, ครั้งเดียวเท่านั้น
// admin ทำแทนไม่ได้
func (s *DonationService) Rate(actorID, donationID uint, score int, feedback string) error {
	if score < 0 || score > 5 {
		return invalidField("score", "must be between 0 and 5")
	}

	d, err := s.load(donationID)
	if err != nil {
		return err
	}
	if d.CharityID == nil || *d.CharityID != actorID {
		return ErrUnauthorized
	}
	if d.DonorID == actorID {
		// ผู้ให้คะแนนต้องไม่ใช่ donor เอง
		return ErrUnauthorized
	}
	if d.Status != entity.StatusCompleted {
		return &InvalidTransitionError{From: d.Status, To: entity.StatusCompleted, Role: entity.RoleCharity}
	}

	affected, err := s.Repo.RateGuard(s.DB, donationID, actorID, score, feedback)
	if err != nil {
		return classify(err)
	}
	if affected == 0 {
		// เคยให้คะแนนไปแล้ว - write-once
		return ErrConflict
	}
	return nil
}

// ----- System (time-triggered) -----

// กวาด donation ที่เลย expiryTime → expired
// เรียกจาก ticker ใน main (และจาก test ตรง ๆ)
func (s *DonationService) ExpireDue(now time.Time) (int, error) {
	expired := 0
	var ids []uint

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		due, err := s.Repo.FindExpirable(tx, now)
		if err != nil {
			return err
		}
		for _, d := range due {
			affected, err := s.Repo.UpdateStatusGuard(tx, d.ID, d.Status, entity.StatusExpired, nil)
			if err != nil {
				return err
			}
			if affected == 0 {
				continue // มีคนเปลี่ยน state ไปก่อน - ข้าม
			}
			if err := s.Repo.AppendTracking(tx, &entity.TrackingEntry{
				DonationID:  d.ID,
				Status:      entity.StatusExpired,
				UpdatedByID: d.DonorID,
				Notes:       "expired automatically",
			}); err != nil {
				return err
			}
			expired++
			ids = append(ids, d.ID)
		}
		return nil
	})
	if err != nil {
		return 0, classify(err)
	}

	for _, id := range ids {
		s.notify(id, entity.StatusExpired)
	}
	return expired, nil
}

// ----- Generic PATCH entry point -----

// PATCH /donations/:id ส่ง status ที่อยากได้มา - server ตัดสินใจเองว่า
// transition ไหนถูกเรียก ไม่เชื่อ status จาก client ตรง ๆ
func (s *DonationService) ApplyStatus(actorID uint, role string, donationID uint, requested, notes string) error {
	target, ok := entity.ParseDonationStatus(requested)
	if !ok {
		return invalidField("status", "unknown status "+requested)
	}

	switch target {
	case entity.StatusApproved:
		if role != entity.RoleAdmin {
			return ErrUnauthorized
		}
		return s.Approve(actorID, donationID, notes)
	case entity.StatusCancelled:
		return s.Cancel(actorID, role, donationID, notes)
	case entity.StatusInProgress:
		if role != entity.RoleVolunteer && role != entity.RoleAdmin {
			return ErrUnauthorized
		}
		return s.StartDelivery(actorID, donationID)
	case entity.StatusCompleted:
		return s.Complete(actorID, role, donationID, notes)
	default:
		// pending/expired ไม่ใช่ transition ที่ user สั่งได้
		d, err := s.load(donationID)
		if err != nil {
			return err
		}
		return &InvalidTransitionError{From: d.Status, To: target, Role: role}
	}
}
