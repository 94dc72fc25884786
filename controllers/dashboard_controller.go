package controllers

import (
	"backend/entity"
	"backend/pkg/resp"
	"backend/repository"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// Dashboard ต่อ role - derived views ล้วน ๆ คำนวณใหม่ทุก request
type DashboardController struct {
	Donations *repository.DonationRepository
}

func NewDashboardController(donations *repository.DonationRepository) *DashboardController {
	return &DashboardController{Donations: donations}
}

// GET /dashboard
func (dc *DashboardController) Show(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var counts repository.DashboardCounts
	var err error

	switch utils.CurrentRole(c) {
	case entity.RoleDonor:
		counts, err = dc.Donations.CountsForDonor(uid)
	case entity.RoleCharity:
		counts, err = dc.Donations.CountsForCharity(uid)
	case entity.RoleVolunteer:
		counts, err = dc.Donations.CountsForVolunteer(uid)
	default:
		resp.Forbidden(c, "no dashboard for this role")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.OK(c, counts)
}
