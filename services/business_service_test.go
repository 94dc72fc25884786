package services

import (
	"testing"

	"backend/entity"
	"backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBusinessService(t *testing.T) (*BusinessService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewBusinessService(repository.NewBusinessRepository(db))
	return svc, db
}

func validBusinessReq() *RegisterBusinessReq {
	return &RegisterBusinessReq{
		BusinessType: "restaurant",
		BusinessName: "Green Table",
		ContactName:  "Ann",
		Email:        "Contact@GreenTable.local",
		Phone:        "0812345678",
		Address:      "1 Main Road",
		PickupWindow: "18:00-20:00",
		Frequency:    "daily",
	}
}

func TestBusinessRegister(t *testing.T) {
	svc, db := newBusinessService(t)
	donor := seedUser(t, db, "donor@test.local", entity.RoleDonor)

	p, err := svc.Register(donor.ID, validBusinessReq())
	require.NoError(t, err)
	assert.Equal(t, entity.BusinessPending, p.Status)
	assert.Equal(t, "contact@greentable.local", p.Email) // normalize lower-case

	// สมัครซ้ำด้วย email/ชื่อเดิม → conflict
	other := seedUser(t, db, "other@test.local", entity.RoleDonor)
	_, err = svc.Register(other.ID, validBusinessReq())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestBusinessApprove(t *testing.T) {
	svc, db := newBusinessService(t)
	donor := seedUser(t, db, "donor@test.local", entity.RoleDonor)
	admin := seedUser(t, db, "admin@test.local", entity.RoleAdmin)

	p, err := svc.Register(donor.ID, validBusinessReq())
	require.NoError(t, err)

	approved, err := svc.Approve(admin.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BusinessApproved, approved.Status)
	require.NotNil(t, approved.ReviewedByID)
	assert.Equal(t, admin.ID, *approved.ReviewedByID)
	require.NotNil(t, approved.ReviewedAt)

	// เจ้าของโดน mark verified และได้ชื่อองค์กร
	var u entity.User
	require.NoError(t, db.First(&u, donor.ID).Error)
	assert.Equal(t, "verified", u.VerificationStatus)
	assert.Equal(t, "Green Table", u.OrganizationName)

	// approve ซ้ำ → ไม่ pending แล้ว
	_, err = svc.Approve(admin.ID, p.ID)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Approve(admin.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBusinessReject(t *testing.T) {
	svc, db := newBusinessService(t)
	donor := seedUser(t, db, "donor@test.local", entity.RoleDonor)
	admin := seedUser(t, db, "admin@test.local", entity.RoleAdmin)

	p, err := svc.Register(donor.ID, validBusinessReq())
	require.NoError(t, err)

	// reason บังคับ
	var ve *ValidationError
	require.ErrorAs(t, svc.Reject(admin.ID, p.ID, ""), &ve)

	require.NoError(t, svc.Reject(admin.ID, p.ID, "incomplete documents"))

	got, err := svc.Profile(donor.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BusinessRejected, got.Status)
	require.NotNil(t, got.RejectReason)
	assert.Equal(t, "incomplete documents", *got.RejectReason)

	// reject ซ้ำ → conflict
	assert.ErrorIs(t, svc.Reject(admin.ID, p.ID, "again"), ErrConflict)
}

func TestBusinessProfileNotFound(t *testing.T) {
	svc, db := newBusinessService(t)
	donor := seedUser(t, db, "donor@test.local", entity.RoleDonor)

	_, err := svc.Profile(donor.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
