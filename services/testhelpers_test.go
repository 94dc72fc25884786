package services

import (
	"path/filepath"
	"testing"
	"time"

	"backend/entity"
	"backend/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB จริง (sqlite ชั่วคราว) - guard update ต้องทดสอบกับ store จริงเท่านั้น
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.BusinessProfile{},
		&entity.Donation{}, &entity.DonationImage{}, &entity.TrackingEntry{},
		&entity.Task{},
	))
	return db
}

func newDonationService(t *testing.T) (*DonationService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewDonationService(db, repository.NewDonationRepository(db))
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *entity.User {
	t.Helper()
	u := entity.User{Email: email, Password: "x", Name: email, Role: role, IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func validDonationReq() *CreateDonationReq {
	pickup := time.Now().Add(2 * time.Hour)
	return &CreateDonationReq{
		FoodType:      "prepared",
		Quantity:      10,
		Unit:          "kg",
		Description:   "cooked rice and curry",
		PickupAddress: "12 Market Street",
		PickupTime:    pickup,
		ExpiryTime:    pickup.Add(6 * time.Hour),
	}
}

func seedDonation(t *testing.T, svc *DonationService, donorID uint) *entity.Donation {
	t.Helper()
	d, err := svc.Create(donorID, validDonationReq())
	require.NoError(t, err)
	return d
}
