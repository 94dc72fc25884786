package controllers

import (
	"strconv"

	"backend/entity"
	"backend/pkg/resp"
	"backend/repository"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type DonationController struct{ Svc *services.DonationService }

func NewDonationController(svc *services.DonationService) *DonationController {
	return &DonationController{Svc: svc}
}

// ===== Create =====

// POST /donations (donor)
func (dc *DonationController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	role := utils.CurrentRole(c)
	if role != entity.RoleDonor && role != entity.RoleAdmin {
		resp.Forbidden(c, "only donors submit donations"); return
	}

	var req services.CreateDonationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	d, err := dc.Svc.Create(uid, &req)
	if err != nil {
		writeServiceError(c, err); return
	}
	resp.Created(c, d)
}

// ===== List & Detail =====

// GET /donations?donor=&charity=&volunteer=&status=&available=&page=&limit=
func (dc *DonationController) List(c *gin.Context) {
	var f repository.DonationFilter

	if v := c.Query("donor"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			u := uint(id); f.DonorID = &u
		}
	}
	if v := c.Query("charity"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			u := uint(id); f.CharityID = &u
		}
	}
	if v := c.Query("volunteer"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			u := uint(id); f.VolunteerID = &u
		}
	}
	if v := c.Query("status"); v != "" {
		status, ok := entity.ParseDonationStatus(v)
		if !ok {
			resp.BadRequest(c, "unknown status "+v); return
		}
		f.Status = status
	}
	f.AvailableOnly = c.Query("available") == "1"
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	// ไม่ใช่ admin → เห็นเฉพาะของตัวเอง หรือรายการ available
	uid := utils.CurrentUserID(c)
	role := utils.CurrentRole(c)
	if role != entity.RoleAdmin && !f.AvailableOnly {
		switch role {
		case entity.RoleDonor:
			f.DonorID = &uid
		case entity.RoleCharity:
			f.CharityID = &uid
		case entity.RoleVolunteer:
			f.VolunteerID = &uid
		}
	}

	items, total, err := dc.Svc.List(f)
	if err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, gin.H{"items": items, "total": total, "page": f.Page, "limit": f.Limit})
}

// GET /donations/:id
func (dc *DonationController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	d, err := dc.Svc.Detail(utils.CurrentUserID(c), utils.CurrentRole(c), uint(id))
	if err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, d)
}

// GET /donations/:id/tracking
func (dc *DonationController) Tracking(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	entries, err := dc.Svc.Tracking(utils.CurrentUserID(c), utils.CurrentRole(c), uint(id))
	if err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, gin.H{"items": entries})
}

// ===== Transitions =====

type UpdateStatusReq struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// PATCH /donations/:id - server ตัดสิน transition เองจาก state + actor
func (dc *DonationController) UpdateStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	err := dc.Svc.ApplyStatus(utils.CurrentUserID(c), utils.CurrentRole(c),
		uint(id), req.Status, req.Notes)
	if err != nil {
		writeServiceError(c, err); return
	}

	d, err := dc.Svc.Detail(utils.CurrentUserID(c), utils.CurrentRole(c), uint(id))
	if err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, d)
}

// POST /donations/:id/claim (charity)
func (dc *DonationController) Claim(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	uid := utils.CurrentUserID(c)

	if err := dc.Svc.Claim(uid, uint(id)); err != nil {
		writeServiceError(c, err); return
	}

	d, err := dc.Svc.Detail(uid, utils.CurrentRole(c), uint(id))
	if err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, d)
}

// ===== Rating =====

type RateReq struct {
	Score    int    `json:"score" binding:"min=0,max=5"`
	Feedback string `json:"feedback"`
}

// POST /donations/:id/rating (charity ที่รับของ, หลัง completed, ครั้งเดียว)
func (dc *DonationController) Rate(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req RateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	if err := dc.Svc.Rate(utils.CurrentUserID(c), uint(id), req.Score, req.Feedback); err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, gin.H{"donationId": id, "score": req.Score})
}
