package services

import (
	"testing"
	"time"

	"backend/entity"
	"backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTaskService(t *testing.T) (*TaskService, *DonationService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	donationRepo := repository.NewDonationRepository(db)
	donationSvc := NewDonationService(db, donationRepo)
	taskSvc := NewTaskService(db, repository.NewTaskRepository(db), donationRepo)
	return taskSvc, donationSvc, db
}

func validTaskReq(donationID uint) *CreateTaskReq {
	return &CreateTaskReq{
		DonationID:        donationID,
		Type:              "pickup",
		Description:       "pick up rice from the market",
		Location:          "12 Market Street",
		ScheduledTime:     time.Now().Add(time.Hour),
		EstimatedDuration: 45,
	}
}

// charity สร้าง task ได้เฉพาะ donation ที่ตัวเอง claim แล้ว
func TestTaskCreateAuthorization(t *testing.T) {
	taskSvc, donationSvc, db := newTaskService(t)
	donor := seedUser(t, db, "donor@test.local", entity.RoleDonor)
	admin := seedUser(t, db, "admin@test.local", entity.RoleAdmin)
	charity := seedUser(t, db, "charity@test.local", entity.RoleCharity)
	other := seedUser(t, db, "other@test.local", entity.RoleCharity)

	d := seedDonation(t, donationSvc, donor.ID)
	require.NoError(t, donationSvc.Approve(admin.ID, d.ID, ""))
	require.NoError(t, donationSvc.Claim(charity.ID, d.ID))

	// volunteer/donor สร้างไม่ได้
	_, err := taskSvc.Create(donor.ID, entity.RoleDonor, validTaskReq(d.ID))
	assert.ErrorIs(t, err, ErrUnauthorized)

	// charity ที่ไม่ได้ claim ก็ไม่ได้
	_, err = taskSvc.Create(other.ID, entity.RoleCharity, validTaskReq(d.ID))
	assert.ErrorIs(t, err, ErrUnauthorized)

	// donation ไม่มีจริง
	_, err = taskSvc.Create(charity.ID, entity.RoleCharity, validTaskReq(9999))
	assert.ErrorIs(t, err, ErrNotFound)

	task, err := taskSvc.Create(charity.ID, entity.RoleCharity, validTaskReq(d.ID))
	require.NoError(t, err)
	assert.Equal(t, entity.TaskOpen, task.Status)
	assert.Equal(t, "medium", task.Priority) // default

	// validation
	bad := validTaskReq(d.ID)
	bad.Type = "paperwork"
	_, err = taskSvc.Create(charity.ID, entity.RoleCharity, bad)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestTaskClaimAndLifecycle(t *testing.T) {
	taskSvc, donationSvc, db := newTaskService(t)
	donor := seedUser(t, db, "donor@test.local", entity.RoleDonor)
	admin := seedUser(t, db, "admin@test.local", entity.RoleAdmin)
	charity := seedUser(t, db, "charity@test.local", entity.RoleCharity)
	v1 := seedUser(t, db, "v1@test.local", entity.RoleVolunteer)
	v2 := seedUser(t, db, "v2@test.local", entity.RoleVolunteer)

	d := seedDonation(t, donationSvc, donor.ID)
	require.NoError(t, donationSvc.Approve(admin.ID, d.ID, ""))
	require.NoError(t, donationSvc.Claim(charity.ID, d.ID))
	task, err := taskSvc.Create(charity.ID, entity.RoleCharity, validTaskReq(d.ID))
	require.NoError(t, err)

	// first-claim-wins
	require.NoError(t, taskSvc.Claim(v1.ID, task.ID))
	assert.ErrorIs(t, taskSvc.Claim(v2.ID, task.ID), ErrConflict)

	// volunteer อื่นเดินงานต่อไม่ได้
	assert.ErrorIs(t, taskSvc.Start(v2.ID, task.ID), ErrUnauthorized)

	require.NoError(t, taskSvc.Start(v1.ID, task.ID))
	require.NoError(t, taskSvc.Complete(v1.ID, task.ID, "done in 30 min"))

	cur, err := taskSvc.Repo.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TaskCompleted, cur.Status)
	assert.Equal(t, "done in 30 min", cur.CompletionNotes)

	// completed เป็น terminal
	var te *InvalidTransitionError
	require.ErrorAs(t, taskSvc.Start(v1.ID, task.ID), &te)
}

func TestTaskCancel(t *testing.T) {
	taskSvc, donationSvc, db := newTaskService(t)
	donor := seedUser(t, db, "donor@test.local", entity.RoleDonor)
	admin := seedUser(t, db, "admin@test.local", entity.RoleAdmin)
	charity := seedUser(t, db, "charity@test.local", entity.RoleCharity)
	volunteer := seedUser(t, db, "vol@test.local", entity.RoleVolunteer)

	d := seedDonation(t, donationSvc, donor.ID)
	require.NoError(t, donationSvc.Approve(admin.ID, d.ID, ""))
	require.NoError(t, donationSvc.Claim(charity.ID, d.ID))
	task, err := taskSvc.Create(charity.ID, entity.RoleCharity, validTaskReq(d.ID))
	require.NoError(t, err)

	// คนอื่นยกเลิกไม่ได้ นอกจากผู้สร้างหรือ admin
	assert.ErrorIs(t, taskSvc.Cancel(volunteer.ID, entity.RoleVolunteer, task.ID), ErrUnauthorized)

	require.NoError(t, taskSvc.Cancel(charity.ID, entity.RoleCharity, task.ID))

	cur, err := taskSvc.Repo.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TaskCancelled, cur.Status)

	// ยกเลิกหลังจบไม่ได้
	var te *InvalidTransitionError
	require.ErrorAs(t, taskSvc.Cancel(admin.ID, entity.RoleAdmin, task.ID), &te)
}
