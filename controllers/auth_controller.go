package controllers

import (
	"net/http"
	"strings"

	"backend/configs"
	"backend/entity"
	"backend/pkg/resp"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	// donor | charity | volunteer (admin seed จาก env เท่านั้น)
	Role             string `json:"role" binding:"omitempty,oneof=donor charity volunteer"`
	OrganizationName string `json:"organizationName"`
	OrganizationType string `json:"organizationType" binding:"omitempty,oneof=charity restaurant grocery other"`
}
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct{ DB *gorm.DB }

func NewAuthController(db *gorm.DB) *AuthController { return &AuthController{DB: db} }

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	var exist entity.User
	if err := a.DB.Where("email = ?", strings.ToLower(req.Email)).First(&exist).Error; err == nil {
		resp.BadRequest(c, "email already registered"); return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil { resp.ServerError(c, err); return }

	role := req.Role
	if role == "" {
		role = entity.RoleDonor
	}
	orgType := req.OrganizationType
	if orgType == "" {
		orgType = "other"
	}

	user := entity.User{
		Email:            strings.ToLower(req.Email),
		Password:         string(hashed),
		Name:             req.Name,
		Phone:            req.Phone,
		Address:          req.Address,
		Role:             role,
		OrganizationName: req.OrganizationName,
		OrganizationType: orgType,
		IsActive:         true,
	}

	if err := a.DB.Create(&user).Error; err != nil {
		resp.ServerError(c, err); return
	}

	resp.Created(c, gin.H{
		"id": user.ID, "email": user.Email, "name": user.Name,
		"phone": user.Phone, "role": user.Role,
	})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	var user entity.User
	if err := a.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		resp.Unauthorized(c, "invalid credentials"); return
	}
	if !user.IsActive {
		resp.Forbidden(c, "account disabled"); return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		resp.Unauthorized(c, "invalid credentials"); return
	}

	cfg := configs.LoadConfig()
	token, err := utils.GenerateToken(user.ID, user.Role, cfg.JWTSecret, cfg.JWTTTL)
	if err != nil { resp.ServerError(c, err); return }

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"token": token,
		"user": gin.H{
			"id": user.ID, "email": user.Email, "name": user.Name,
			"phone": user.Phone, "role": user.Role,
		},
	})
}

// GET /auth/me (ต้อง login)
func (a *AuthController) Me(c *gin.Context) {
	var user entity.User
	idVal, _ := c.Get("userId")
	if err := a.DB.First(&user, idVal).Error; err != nil {
		resp.BadRequest(c, "user not found"); return
	}
	resp.OK(c, gin.H{
		"id": user.ID, "email": user.Email, "name": user.Name,
		"phone": user.Phone, "address": user.Address, "role": user.Role,
		"organizationName": user.OrganizationName,
		"organizationType": user.OrganizationType,
		"verificationStatus": user.VerificationStatus,
	})
}
