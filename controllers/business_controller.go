package controllers

import (
	"strconv"
	"time"

	"backend/entity"
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type BusinessController struct{ Svc *services.BusinessService }

func NewBusinessController(svc *services.BusinessService) *BusinessController {
	return &BusinessController{Svc: svc}
}

// ====== Response DTO ======
type BusinessProfileResponse struct {
	ID           uint   `json:"id"`
	BusinessType string `json:"businessType"`
	BusinessName string `json:"businessName"`
	ContactName  string `json:"contactName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	PickupWindow string `json:"pickupWindow"`
	Frequency    string `json:"frequency"`
	Status       string `json:"status"`
	SubmittedAt  string `json:"submittedAt"`
	RejectReason string `json:"rejectReason,omitempty"`
}

func toBusinessResponse(p *entity.BusinessProfile) BusinessProfileResponse {
	out := BusinessProfileResponse{
		ID:           p.ID,
		BusinessType: p.BusinessType,
		BusinessName: p.BusinessName,
		ContactName:  p.ContactName,
		Email:        p.Email,
		Phone:        p.Phone,
		Address:      p.Address,
		PickupWindow: p.PickupWindow,
		Frequency:    p.Frequency,
		Status:       p.Status,
		SubmittedAt:  p.CreatedAt.Format(time.RFC3339),
	}
	if p.RejectReason != nil {
		out.RejectReason = *p.RejectReason
	}
	return out
}

// ====== Donor ยื่นสมัครธุรกิจ ======

// POST /business/register
func (bc *BusinessController) Register(c *gin.Context) {
	var req services.RegisterBusinessReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	p, err := bc.Svc.Register(utils.CurrentUserID(c), &req)
	if err != nil {
		writeServiceError(c, err); return
	}
	resp.Created(c, gin.H{"id": p.ID, "status": p.Status})
}

// GET /business/profile
func (bc *BusinessController) Profile(c *gin.Context) {
	p, err := bc.Svc.Profile(utils.CurrentUserID(c))
	if err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, toBusinessResponse(p))
}

// ====== Admin ======

// GET /admin/business?status=pending
func (bc *BusinessController) List(c *gin.Context) {
	status := c.DefaultQuery("status", entity.BusinessPending)

	items, err := bc.Svc.List(status)
	if err != nil {
		writeServiceError(c, err); return
	}

	out := make([]BusinessProfileResponse, 0, len(items))
	for i := range items {
		out = append(out, toBusinessResponse(&items[i]))
	}
	resp.OK(c, gin.H{"items": out})
}

// PATCH /admin/business/:id/approve
func (bc *BusinessController) Approve(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	p, err := bc.Svc.Approve(utils.CurrentUserID(c), uint(id))
	if err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, toBusinessResponse(p))
}

type RejectBusinessReq struct {
	Reason string `json:"reason" binding:"required"`
}

// PATCH /admin/business/:id/reject
func (bc *BusinessController) Reject(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req RejectBusinessReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	if err := bc.Svc.Reject(utils.CurrentUserID(c), uint(id), req.Reason); err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, gin.H{"id": id, "status": entity.BusinessRejected, "reason": req.Reason})
}
