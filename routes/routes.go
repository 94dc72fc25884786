package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/entity"
	"backend/middlewares"
	"backend/repository"
	"backend/services"
	"backend/ws"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, feed *ws.FeedHub) *services.DonationService {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()

	// Repositories
	donationRepo := repository.NewDonationRepository(db)
	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	donationSvc := services.NewDonationService(db, donationRepo)
	donationSvc.Feed = feed
	businessSvc := services.NewBusinessService(businessRepo)
	taskSvc := services.NewTaskService(db, taskRepo, donationRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(db)
	donationCtrl := controllers.NewDonationController(donationSvc)
	businessCtrl := controllers.NewBusinessController(businessSvc)
	taskCtrl := controllers.NewTaskController(taskSvc)
	dashCtrl := controllers.NewDashboardController(donationRepo)
	adminCtrl := controllers.NewAdminController(db, donationSvc, userRepo, businessRepo)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware())
	{
		aAuth.GET("/me", authCtrl.Me)
	}

	// Donations (ทุก role ที่ login แล้ว - ownership เช็คใน service)
	u := r.Group("/", middlewares.AuthMiddleware())
	{
		u.POST("/donations", donationCtrl.Create)
		u.GET("/donations", donationCtrl.List)
		u.GET("/donations/:id", donationCtrl.Detail)
		u.GET("/donations/:id/tracking", donationCtrl.Tracking)
		u.PATCH("/donations/:id", donationCtrl.UpdateStatus)
		u.GET("/dashboard", dashCtrl.Show)
	}

	// Claim/rating เฉพาะ charity
	ch := r.Group("/", middlewares.AuthMiddleware(entity.RoleCharity))
	{
		ch.POST("/donations/:id/claim", donationCtrl.Claim)
		ch.POST("/donations/:id/rating", donationCtrl.Rate)
	}

	// Business profile (donor ยื่นสมัคร)
	b := r.Group("/business", middlewares.AuthMiddleware(entity.RoleDonor, entity.RoleAdmin))
	{
		b.POST("/register", businessCtrl.Register)
		b.GET("/profile", businessCtrl.Profile)
	}

	// Tasks
	t := r.Group("/tasks", middlewares.AuthMiddleware())
	{
		t.POST("", taskCtrl.Create) // role เช็คใน service (charity/admin)
		t.GET("", taskCtrl.List)
		t.PATCH("/:id", taskCtrl.Update)
	}
	tv := r.Group("/tasks", middlewares.AuthMiddleware(entity.RoleVolunteer))
	{
		tv.POST("/:id/claim", taskCtrl.Claim)
	}

	// Admin (admin only)
	admin := r.Group("/admin", middlewares.AuthMiddleware(entity.RoleAdmin))
	{
		admin.GET("/dashboard", adminCtrl.Dashboard)
		admin.GET("/donations", adminCtrl.ListDonations)
		admin.PATCH("/donations/:id/approve", adminCtrl.ApproveDonation)
		admin.PATCH("/donations/:id/reject", adminCtrl.RejectDonation)
		admin.GET("/business", businessCtrl.List)
		admin.PATCH("/business/:id/approve", businessCtrl.Approve)
		admin.PATCH("/business/:id/reject", businessCtrl.Reject)
		admin.GET("/users", adminCtrl.ListUsers)
	}

	// Realtime feed
	r.GET("/ws/feed", middlewares.AuthMiddleware(), feed.HandleWebSocket)

	return donationSvc
}
