package services

import (
	"errors"
	"time"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

// TaskService - status machine ของงาน volunteer
// open → assigned → in_progress → completed, cancelled จาก open/assigned

type TaskService struct {
	DB        *gorm.DB
	Repo      *repository.TaskRepository
	Donations *repository.DonationRepository
}

func NewTaskService(db *gorm.DB, repo *repository.TaskRepository, donations *repository.DonationRepository) *TaskService {
	return &TaskService{DB: db, Repo: repo, Donations: donations}
}

type CreateTaskReq struct {
	DonationID        uint      `json:"donationId" binding:"required"`
	Type              string    `json:"type" binding:"required"`
	Priority          string    `json:"priority"`
	Description       string    `json:"description" binding:"required"`
	Location          string    `json:"location" binding:"required"`
	ScheduledTime     time.Time `json:"scheduledTime" binding:"required"`
	EstimatedDuration int       `json:"estimatedDuration" binding:"required,min=1"`
}

// charity/admin สร้างงานให้ volunteer มารับ
func (s *TaskService) Create(actorID uint, role string, req *CreateTaskReq) (*entity.Task, error) {
	if role != entity.RoleCharity && role != entity.RoleAdmin {
		return nil, ErrUnauthorized
	}
	if !entity.ValidTaskType(req.Type) {
		return nil, invalidField("type", "must be one of pickup, delivery, verification, other")
	}
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	if !entity.ValidPriority(priority) {
		return nil, invalidField("priority", "must be one of low, medium, high, urgent")
	}

	d, err := s.Donations.Get(req.DonationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// charity สร้าง task ได้เฉพาะ donation ที่ตัวเอง claim ไว้
	if role == entity.RoleCharity && (d.CharityID == nil || *d.CharityID != actorID) {
		return nil, ErrUnauthorized
	}

	t := entity.Task{
		DonationID:        req.DonationID,
		CreatedByID:       actorID,
		Type:              req.Type,
		Status:            entity.TaskOpen,
		Priority:          priority,
		Description:       req.Description,
		Location:          req.Location,
		ScheduledTime:     req.ScheduledTime,
		EstimatedDuration: req.EstimatedDuration,
	}
	if err := s.Repo.Create(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TaskService) List(f repository.TaskFilter) ([]entity.Task, error) {
	return s.Repo.List(f)
}

// volunteer รับงาน - first-claim-wins
func (s *TaskService) Claim(volunteerID, taskID uint) error {
	if _, err := s.get(taskID); err != nil {
		return err
	}

	affected, err := s.Repo.ClaimGuard(s.DB, taskID, volunteerID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConflict
	}
	return nil
}

// assigned → in_progress (เฉพาะ volunteer เจ้าของงาน)
func (s *TaskService) Start(volunteerID, taskID uint) error {
	t, err := s.get(taskID)
	if err != nil {
		return err
	}
	if t.VolunteerID == nil || *t.VolunteerID != volunteerID {
		return ErrUnauthorized
	}
	return s.transition(taskID, entity.TaskAssigned, entity.TaskInProgress, nil)
}

// in_progress → completed (เฉพาะ volunteer เจ้าของงาน)
func (s *TaskService) Complete(volunteerID, taskID uint, notes string) error {
	t, err := s.get(taskID)
	if err != nil {
		return err
	}
	if t.VolunteerID == nil || *t.VolunteerID != volunteerID {
		return ErrUnauthorized
	}
	var extra map[string]any
	if notes != "" {
		extra = map[string]any{"completion_notes": notes}
	}
	return s.transition(taskID, entity.TaskInProgress, entity.TaskCompleted, extra)
}

// ยกเลิกได้ตอน open/assigned - คนสร้างหรือ admin
func (s *TaskService) Cancel(actorID uint, role string, taskID uint) error {
	t, err := s.get(taskID)
	if err != nil {
		return err
	}
	if role != entity.RoleAdmin && t.CreatedByID != actorID {
		return ErrUnauthorized
	}
	if t.Status != entity.TaskOpen && t.Status != entity.TaskAssigned {
		return &InvalidTransitionError{From: t.Status, To: entity.TaskCancelled, Role: role}
	}
	return s.transition(taskID, t.Status, entity.TaskCancelled, nil)
}

func (s *TaskService) get(id uint) (*entity.Task, error) {
	t, err := s.Repo.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TaskService) transition(id uint, from, to string, extra map[string]any) error {
	affected, err := s.Repo.UpdateStatusGuard(s.DB, id, from, to, extra)
	if err != nil {
		return err
	}
	if affected == 0 {
		t, gerr := s.Repo.Get(id)
		if gerr != nil {
			return ErrNotFound
		}
		return &InvalidTransitionError{From: t.Status, To: to, Role: ""}
	}
	return nil
}
