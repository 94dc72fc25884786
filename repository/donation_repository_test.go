package repository

import (
	"path/filepath"
	"testing"
	"time"

	"backend/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) *DonationRepository {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "repo.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Donation{}, &entity.TrackingEntry{}))
	return NewDonationRepository(db)
}

func seed(t *testing.T, r *DonationRepository, donorID uint, status string) *entity.Donation {
	t.Helper()
	now := time.Now()
	d := entity.Donation{
		DonorID: donorID, FoodType: "packaged", Quantity: 5, Unit: "items",
		Description: "canned goods", PickupAddress: "somewhere",
		PickupTime: now, ExpiryTime: now.Add(24 * time.Hour),
		Status: status,
	}
	require.NoError(t, r.Create(r.DB, &d))
	return &d
}

func TestUpdateStatusGuard(t *testing.T) {
	r := setupRepo(t)
	d := seed(t, r, 1, entity.StatusPending)

	// from ตรง → 1 แถว
	affected, err := r.UpdateStatusGuard(r.DB, d.ID, entity.StatusPending, entity.StatusApproved,
		map[string]any{"admin_approval": true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	// from ไม่ตรงแล้ว → 0 แถว ไม่แตะอะไร
	affected, err = r.UpdateStatusGuard(r.DB, d.ID, entity.StatusPending, entity.StatusCancelled, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	cur, err := r.Get(d.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, cur.Status)
	assert.True(t, cur.AdminApproval)
}

func TestClaimGuardConditional(t *testing.T) {
	r := setupRepo(t)
	d := seed(t, r, 1, entity.StatusApproved)

	affected, err := r.ClaimGuard(r.DB, d.ID, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	// charity ตั้งไปแล้ว - เงื่อนไข IS NULL ไม่ผ่าน
	affected, err = r.ClaimGuard(r.DB, d.ID, 11)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	cur, err := r.Get(d.ID)
	require.NoError(t, err)
	require.NotNil(t, cur.CharityID)
	assert.EqualValues(t, 10, *cur.CharityID)

	// donation ที่ยัง pending - claim ไม่ติด
	p := seed(t, r, 1, entity.StatusPending)
	affected, err = r.ClaimGuard(r.DB, p.ID, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)
}

func TestListFilters(t *testing.T) {
	r := setupRepo(t)
	seed(t, r, 1, entity.StatusPending)
	approved := seed(t, r, 1, entity.StatusApproved)
	claimed := seed(t, r, 2, entity.StatusApproved)
	_, err := r.ClaimGuard(r.DB, claimed.ID, 7)
	require.NoError(t, err)

	donor1 := uint(1)
	items, total, err := r.List(DonationFilter{DonorID: &donor1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	// available = approved และยังไม่มี charity
	items, total, err = r.List(DonationFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, approved.ID, items[0].ID)

	charity := uint(7)
	items, _, err = r.List(DonationFilter{CharityID: &charity})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, claimed.ID, items[0].ID)
}

func TestTrackingAppendOrder(t *testing.T) {
	r := setupRepo(t)
	d := seed(t, r, 1, entity.StatusPending)

	for _, status := range []string{entity.StatusApproved, entity.StatusInProgress, entity.StatusCompleted} {
		require.NoError(t, r.AppendTracking(r.DB, &entity.TrackingEntry{
			DonationID: d.ID, Status: status, UpdatedByID: 1,
		}))
	}

	entries, err := r.ListTracking(d.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, entity.StatusApproved, entries[0].Status)
	assert.Equal(t, entity.StatusCompleted, entries[2].Status)
}

func TestDashboardCounts(t *testing.T) {
	r := setupRepo(t)
	seed(t, r, 1, entity.StatusPending)
	seed(t, r, 1, entity.StatusApproved)
	a := seed(t, r, 1, entity.StatusApproved)
	c := seed(t, r, 1, entity.StatusCompleted)

	_, err := r.ClaimGuard(r.DB, a.ID, 7)
	require.NoError(t, err)
	require.NoError(t, r.DB.Model(c).Update("charity_id", 7).Error)

	donor, err := r.CountsForDonor(1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, donor.Pending)
	assert.EqualValues(t, 2, donor.Active)
	assert.EqualValues(t, 1, donor.Completed)

	charity, err := r.CountsForCharity(7)
	require.NoError(t, err)
	assert.EqualValues(t, 1, charity.Pending) // claim แล้ว รอส่ง
	assert.EqualValues(t, 1, charity.Completed)
	assert.EqualValues(t, 1, charity.Available) // approved ที่ยังว่าง

	vol, err := r.CountsForVolunteer(99)
	require.NoError(t, err)
	assert.EqualValues(t, 2, vol.Available) // approved ที่ยังไม่มี volunteer
}
