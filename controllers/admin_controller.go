package controllers

import (
	"strconv"
	"time"

	"backend/entity"
	"backend/pkg/resp"
	"backend/repository"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	DB        *gorm.DB
	Donations *services.DonationService
	Users     *repository.UserRepository
	Business  *repository.BusinessRepository
}

func NewAdminController(db *gorm.DB, donations *services.DonationService,
	users *repository.UserRepository, business *repository.BusinessRepository) *AdminController {
	return &AdminController{DB: db, Donations: donations, Users: users, Business: business}
}

// Dashboard: ตัวเลขรวม ๆ ของทั้งระบบ
func (ac *AdminController) Dashboard(c *gin.Context) {
	totalUsers, err := ac.Users.CountAll()
	if err != nil {
		resp.ServerError(c, err); return
	}

	pendingBusiness, err := ac.Business.CountByStatus(entity.BusinessPending)
	if err != nil {
		resp.ServerError(c, err); return
	}

	var pendingDonations int64
	if err := ac.DB.Model(&entity.Donation{}).
		Where("status = ?", entity.StatusPending).
		Count(&pendingDonations).Error; err != nil {
		resp.ServerError(c, err); return
	}

	// donation ของวันนี้
	start := time.Now().Truncate(24 * time.Hour)
	donationsToday, err := ac.Donations.Repo.CountDonationsSince(start)
	if err != nil {
		resp.ServerError(c, err); return
	}

	resp.OK(c, gin.H{
		"totalUsers":       totalUsers,
		"pendingBusiness":  pendingBusiness,
		"pendingDonations": pendingDonations,
		"donationsToday":   donationsToday,
	})
}

// GET /admin/donations?status=pending
func (ac *AdminController) ListDonations(c *gin.Context) {
	var f repository.DonationFilter
	if v := c.Query("status"); v != "" {
		status, ok := entity.ParseDonationStatus(v)
		if !ok {
			resp.BadRequest(c, "unknown status "+v); return
		}
		f.Status = status
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, total, err := ac.Donations.List(f)
	if err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, gin.H{"items": items, "total": total, "page": f.Page, "limit": f.Limit})
}

type AdminNotesReq struct {
	Notes string `json:"notes"`
}

// PATCH /admin/donations/:id/approve
func (ac *AdminController) ApproveDonation(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req AdminNotesReq
	_ = c.ShouldBindJSON(&req) // notes optional

	if err := ac.Donations.Approve(utils.CurrentUserID(c), uint(id), req.Notes); err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, gin.H{"id": id, "status": entity.StatusApproved})
}

// PATCH /admin/donations/:id/reject - reject ของ admin = cancel พร้อม notes
func (ac *AdminController) RejectDonation(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req AdminNotesReq
	_ = c.ShouldBindJSON(&req)

	err := ac.Donations.Cancel(utils.CurrentUserID(c), entity.RoleAdmin, uint(id), req.Notes)
	if err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, gin.H{"id": id, "status": entity.StatusCancelled})
}

// GET /admin/users?role=&page=&limit=
func (ac *AdminController) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := ac.Users.List(c.Query("role"), page, limit)
	if err != nil {
		resp.ServerError(c, err); return
	}

	type row struct {
		ID                 uint   `json:"id"`
		Email              string `json:"email"`
		Name               string `json:"name"`
		Role               string `json:"role"`
		OrganizationName   string `json:"organizationName,omitempty"`
		VerificationStatus string `json:"verificationStatus"`
		IsActive           bool   `json:"isActive"`
	}
	items := make([]row, 0, len(users))
	for _, u := range users {
		items = append(items, row{
			ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role,
			OrganizationName: u.OrganizationName,
			VerificationStatus: u.VerificationStatus, IsActive: u.IsActive,
		})
	}
	resp.OK(c, gin.H{"items": items, "total": total, "page": page, "limit": limit})
}
