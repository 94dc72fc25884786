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

type TaskController struct{ Svc *services.TaskService }

func NewTaskController(svc *services.TaskService) *TaskController {
	return &TaskController{Svc: svc}
}

// POST /tasks (charity/admin)
func (tc *TaskController) Create(c *gin.Context) {
	var req services.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	t, err := tc.Svc.Create(utils.CurrentUserID(c), utils.CurrentRole(c), &req)
	if err != nil {
		writeServiceError(c, err); return
	}
	resp.Created(c, t)
}

// GET /tasks?status=&donation=&open=1
func (tc *TaskController) List(c *gin.Context) {
	var f repository.TaskFilter
	f.Status = c.Query("status")
	f.OpenOnly = c.Query("open") == "1"
	if v := c.Query("donation"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			u := uint(id); f.DonationID = &u
		}
	}

	// volunteer เห็นงานของตัวเอง เว้นแต่ขอรายการ open
	uid := utils.CurrentUserID(c)
	if utils.CurrentRole(c) == entity.RoleVolunteer && !f.OpenOnly {
		f.VolunteerID = &uid
	}

	items, err := tc.Svc.List(f)
	if err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /tasks/:id/claim (volunteer)
func (tc *TaskController) Claim(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := tc.Svc.Claim(utils.CurrentUserID(c), uint(id)); err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, gin.H{"id": id, "status": entity.TaskAssigned})
}

type UpdateTaskReq struct {
	Status string `json:"status" binding:"required,oneof=in_progress completed cancelled"`
	Notes  string `json:"notes"`
}

// PATCH /tasks/:id
func (tc *TaskController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	uid := utils.CurrentUserID(c)
	role := utils.CurrentRole(c)

	var req UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	var err error
	switch req.Status {
	case entity.TaskInProgress:
		err = tc.Svc.Start(uid, uint(id))
	case entity.TaskCompleted:
		err = tc.Svc.Complete(uid, uint(id), req.Notes)
	case entity.TaskCancelled:
		err = tc.Svc.Cancel(uid, role, uint(id))
	}
	if err != nil {
		writeServiceError(c, err); return
	}
	resp.OK(c, gin.H{"id": id, "status": req.Status})
}
