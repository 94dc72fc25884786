package configs

import (
	"log"

	"backend/entity"

	"golang.org/x/crypto/bcrypt"
)

// สร้าง admin ครั้งแรก
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("⚠️ skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("ℹ️ admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:    email,
		Password: string(hash),
		Name:     "Admin",
		Role:     entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}

// Demo users สำหรับทดลองระบบ (เปิดด้วย SEED_DEMO=1)
func SeedDemoUsers() error {
	db := DB()

	demo := []entity.User{
		{Email: "donor@demo.local", Name: "Demo Donor", Role: entity.RoleDonor},
		{Email: "restaurant@demo.local", Name: "Demo Restaurant", Role: entity.RoleDonor,
			OrganizationName: "Demo Diner", OrganizationType: "restaurant"},
		{Email: "charity@demo.local", Name: "Demo Charity", Role: entity.RoleCharity,
			OrganizationName: "Demo Food Bank", OrganizationType: "charity"},
		{Email: "volunteer@demo.local", Name: "Demo Volunteer", Role: entity.RoleVolunteer},
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	for i := range demo {
		demo[i].Password = string(hash)
		if err := db.Where(entity.User{Email: demo[i].Email}).
			FirstOrCreate(&demo[i]).Error; err != nil {
			return err
		}
	}
	log.Println("ℹ️ demo users ready (password: demo1234)")
	return nil
}
